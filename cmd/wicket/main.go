package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/indigo-web/wicket"
	"github.com/indigo-web/wicket/config"
)

func main() {
	cfg := config.Default()
	var (
		fifo      = flag.Bool("fifo", false, "serve queued connections in FIFO order instead of LIFO")
		accessLog = flag.String("access-log", "", "write JSON access log into the file, - for stdout")
		debug     = flag.Bool("debug", false, "enable debug logging")
		port      = flag.Uint("port", uint(cfg.NET.Port), "port to listen on")
	)

	flag.StringVar(&cfg.NET.Host, "addr", cfg.NET.Host, "host to listen on")
	flag.BoolVar(&cfg.NET.ReusePort, "reuse-port", cfg.NET.ReusePort, "set SO_REUSEPORT on the listening socket")
	flag.StringVar(&cfg.Static.Root, "root", cfg.Static.Root, "directory to serve static pages from")
	flag.IntVar(&cfg.Dispatch.QueueCapacity, "queue-cap", cfg.Dispatch.QueueCapacity, "max queued connections, 0 is unbounded")
	flag.DurationVar(&cfg.Dispatch.GracePeriod, "grace", cfg.Dispatch.GracePeriod, "how long to wait for in-flight handlers on shutdown")
	flag.DurationVar(&cfg.Dispatch.HandlerTimeout, "timeout", cfg.Dispatch.HandlerTimeout, "per-connection handler timeout")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *port > 65535 {
		logger.Error("bad port", "port", *port)
		os.Exit(2)
	}

	cfg.NET.Port = uint16(*port)
	if *fifo {
		cfg.Dispatch.Order = config.FIFO
	}

	if err := run(cfg, logger, *accessLog); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, accessLog string) error {
	app := wicket.New(cfg.NET.Port).
		Tune(cfg).
		Logger(logger).
		NotifyOnStop(func() {
			logger.Info("bye")
		})

	if len(accessLog) > 0 {
		out, closer, err := openAccessLog(accessLog)
		if err != nil {
			return fmt.Errorf("open access log: %w", err)
		}

		defer closer.Close()
		app.AccessLog(out)
	}

	return app.Serve(context.Background())
}

func openAccessLog(path string) (io.Writer, io.Closer, error) {
	if path == "-" {
		return os.Stdout, io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	return file, file, nil
}
