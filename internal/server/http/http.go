package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/http"
	"github.com/indigo-web/wicket/http/status"
	"github.com/indigo-web/wicket/internal/accesslog"
	"github.com/indigo-web/wicket/internal/protocol/http1"
	"github.com/indigo-web/wicket/transport"
)

const connIDLength = 12

var aLongTimeAgo = time.Unix(1, 0)

// Router resolves a request path into a response.
type Router interface {
	Route(path string) (*http.Response, error)
}

// Server runs the whole exchange over a single connection: read, parse, route and write.
// Connections are never kept alive, one request is served at most.
type Server struct {
	cfg       *config.Config
	router    Router
	logger    *slog.Logger
	accessLog *accesslog.Writer
}

// NewServer returns a new server. accessLog may be nil.
func NewServer(cfg *config.Config, router Router, logger *slog.Logger, accessLog *accesslog.Writer) *Server {
	return &Server{
		cfg:       cfg,
		router:    router,
		logger:    logger,
		accessLog: accessLog,
	}
}

// Serve handles the connection until the response is written or ctx is done. Whenever ctx
// is done before the response is written, nothing is written at all and ctx.Err() is returned.
// Malformed requests are logged and dropped without a response, nil is returned in that case.
//
// Serve never closes the connection, this is up to the caller.
func (s *Server) Serve(ctx context.Context, conn net.Conn) error {
	start := time.Now()
	record := accesslog.Record{
		ID:     uniuri.NewLen(connIDLength),
		Remote: conn.RemoteAddr().String(),
	}
	logger := s.logger.With("conn", record.ID, "remote", record.Remote)

	err := s.serve(ctx, conn, logger, &record)
	if err != nil {
		record.Error = err.Error()
	}

	record.DurationMs = accesslog.Duration(time.Since(start))
	if logErr := s.accessLog.Write(record); logErr != nil {
		logger.Error("cannot write access log", "error", logErr)
	}

	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn("dropping malformed request", "error", err)
		return nil
	}

	return err
}

func (s *Server) serve(ctx context.Context, conn net.Conn, logger *slog.Logger, record *accesslog.Record) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}

	// a deadline in the past unblocks any pending read or write immediately
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(aLongTimeAgo)
	})
	defer stop()

	client := transport.NewClient(conn, make([]byte, s.cfg.NET.ReadBufferSize))
	data, err := http1.ReadRequest(client, s.cfg)
	if err != nil {
		if ctxErr := interrupted(ctx, err); ctxErr != nil {
			return ctxErr
		}

		return fmt.Errorf("read request: %w", err)
	}

	request, err := http1.Parse(data)
	if err != nil {
		return err
	}

	record.Method = request.Method.String()
	record.Path = request.Path
	record.Proto = request.Protocol.String()

	response, err := s.router.Route(request.Path)
	if err != nil {
		return fmt.Errorf("route %q: %w", request.Path, err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	buff := http1.AppendResponse(make([]byte, 0, http1.ResponseSize(response)), response)
	n, err := conn.Write(buff)
	record.Bytes = n
	if err != nil {
		if ctxErr := interrupted(ctx, err); ctxErr != nil {
			return ctxErr
		}

		return fmt.Errorf("write response: %w", err)
	}

	record.Status = int(response.Code)
	logger.Debug("request served",
		"method", record.Method,
		"path", record.Path,
		"status", record.Status,
		"bytes", n,
	)

	return nil
}

// interrupted tells whether the I/O error was caused by ctx. The connection deadline is
// derived from ctx, so it may expire a bit earlier than ctx itself does.
func interrupted(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if _, ok := ctx.Deadline(); ok && errors.Is(err, os.ErrDeadlineExceeded) {
		<-ctx.Done()
		return ctx.Err()
	}

	return nil
}
