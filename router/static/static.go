// Package static resolves request paths against a directory of static pages.
package static

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/http"
	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/status"
)

var errIsDir = errors.New("is a directory")

// Router maps request paths onto files. Every resolved path is responded with 200 and
// text/html, including the not-found page: whether anything was found is told by the
// page content, not the status code.
type Router struct {
	fsys fs.FS
	cfg  config.Static
}

// New returns a router serving files from cfg.Root.
func New(cfg config.Static) *Router {
	return NewFS(os.DirFS(cfg.Root), cfg)
}

// NewFS returns a router serving files from fsys. cfg.Root is ignored.
func NewFS(fsys fs.FS, cfg config.Static) *Router {
	return &Router{
		fsys: fsys,
		cfg:  cfg,
	}
}

// Route looks the path up in the following order:
//  1. root index, if the path is one of the aliases;
//  2. {path}/index.html;
//  3. {path} itself;
//  4. the not-found page.
//
// The first regular file readable wins. Only if the not-found page is unreadable an
// error is returned.
func (r *Router) Route(requestPath string) (*http.Response, error) {
	for _, candidate := range r.candidates(requestPath) {
		content, err := r.read(candidate)
		if err == nil {
			return respond(content), nil
		}
	}

	content, err := r.read(r.cfg.NotFound)
	if err != nil {
		return nil, fmt.Errorf("read not-found page %q: %w", r.cfg.NotFound, err)
	}

	return respond(content), nil
}

func (r *Router) candidates(requestPath string) []string {
	if slices.Contains(r.cfg.Aliases, requestPath) {
		return []string{r.cfg.Index}
	}

	if !isSafe(requestPath) {
		return nil
	}

	return []string{
		relative(path.Join(requestPath, r.cfg.Index)),
		relative(requestPath),
	}
}

// read returns the content of a regular file. Directories are treated as unreadable.
func (r *Router) read(name string) (string, error) {
	file, err := r.fsys.Open(name)
	if err != nil {
		return "", err
	}

	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", errIsDir
	}

	content, err := io.ReadAll(file)
	return string(content), err
}

func respond(content string) *http.Response {
	return http.NewResponse().
		WithCode(status.OK).
		WithContentType(mime.TextHTML).
		String(content)
}

// relative turns an absolute request path into a name usable with fs.FS.
func relative(p string) string {
	p = strings.TrimLeft(path.Clean("/"+p), "/")
	if len(p) == 0 {
		return "."
	}

	return p
}

// isSafe checks for path traversal (basically - double dots)
func isSafe(path string) bool {
	return !strings.Contains(path, "..")
}
