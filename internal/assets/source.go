package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DirSource serves files below a root directory.
type DirSource struct {
	root string
	fsys fs.FS
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir, fsys: os.DirFS(dir)}
}

// Fetch reads the file at path relative to the root.
func (s *DirSource) Fetch(_ context.Context, path string) ([]byte, error) {
	name := strings.TrimPrefix(path, "./")
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", name, s.root, err)
	}
	return data, nil
}

func (s *DirSource) String() string {
	return "dir:" + s.root
}

// HTTPSource serves resources below a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source for the given base URL.
func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch issues a GET for path relative to the base URL. Any non-2xx
// response is an error.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", path, err)
	}
	target := s.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", target, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: reading body: %w", target, err)
	}
	return data, nil
}

func (s *HTTPSource) String() string {
	return "http:" + s.base.String()
}
