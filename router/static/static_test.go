package static

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/status"
	"github.com/stretchr/testify/require"
)

const (
	indexPage    = "<h1>index</h1>"
	notFoundPage = "<h1>not found</h1>"
)

func writeFile(t *testing.T, root, name, content string) {
	full := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func newTree(t *testing.T) *Router {
	root := t.TempDir()
	writeFile(t, root, "index.html", indexPage)
	writeFile(t, root, "not-found/index.html", notFoundPage)
	writeFile(t, root, "about/index.html", "about")
	writeFile(t, root, "style.css", "body{}")
	writeFile(t, root, "nested/deep/page.html", "deep")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	cfg := config.Default().Static
	cfg.Root = root

	return New(cfg)
}

func TestRouter(t *testing.T) {
	router := newTree(t)

	route := func(t *testing.T, path string) string {
		response, err := router.Route(path)
		require.NoError(t, err)
		require.Equal(t, status.OK, response.Code)
		require.Equal(t, mime.TextHTML, response.ContentType)
		require.NotEmpty(t, response.Content)

		return response.Content
	}

	t.Run("aliases", func(t *testing.T) {
		for _, path := range []string{"/", "/index.html", "/www/index.html", "/www"} {
			require.Equal(t, indexPage, route(t, path), path)
		}
	})

	t.Run("directory index", func(t *testing.T) {
		require.Equal(t, "about", route(t, "/about"))
		require.Equal(t, "about", route(t, "/about/"))
	})

	t.Run("file", func(t *testing.T) {
		require.Equal(t, "body{}", route(t, "/style.css"))
		require.Equal(t, "deep", route(t, "/nested/deep/page.html"))
	})

	t.Run("missing", func(t *testing.T) {
		require.Equal(t, notFoundPage, route(t, "/missing"))
		require.Equal(t, notFoundPage, route(t, "/about/missing.html"))
	})

	t.Run("directory without index", func(t *testing.T) {
		require.Equal(t, notFoundPage, route(t, "/empty"))
		require.Equal(t, notFoundPage, route(t, "/nested"))
	})

	t.Run("traversal", func(t *testing.T) {
		require.Equal(t, notFoundPage, route(t, "/../index.html"))
		require.Equal(t, notFoundPage, route(t, "/about/../style.css"))
	})
}

func TestRouterNoNotFoundPage(t *testing.T) {
	cfg := config.Default().Static
	router := NewFS(fstest.MapFS{
		"index.html": {Data: []byte(indexPage)},
	}, cfg)

	response, err := router.Route("/")
	require.NoError(t, err)
	require.Equal(t, indexPage, response.Content)

	response, err = router.Route("/missing")
	require.Error(t, err)
	require.Nil(t, response)
}

func TestRouterCustomConfig(t *testing.T) {
	cfg := config.Static{
		Index:    "default.htm",
		NotFound: "404.htm",
		Aliases:  []string{"/home"},
	}
	router := NewFS(fstest.MapFS{
		"default.htm":      {Data: []byte("home")},
		"docs/default.htm": {Data: []byte("docs")},
		"404.htm":          {Data: []byte("nope")},
	}, cfg)

	for path, want := range map[string]string{
		"/home":  "home",
		"/docs":  "docs",
		"/":      "home",
		"/other": "nope",
	} {
		response, err := router.Route(path)
		require.NoError(t, err)
		require.Equal(t, want, response.Content, path)
	}
}

func TestRelative(t *testing.T) {
	for path, want := range map[string]string{
		"/":          ".",
		"":           ".",
		"/a":         "a",
		"/a/":        "a",
		"a/b":        "a/b",
		"//a//b":     "a/b",
		"/a/./b":     "a/b",
		"/index.htm": "index.htm",
	} {
		require.Equal(t, want, relative(path), path)
	}
}
