// Package gzipbody transparently decompresses gzip-encoded HTTP response
// bodies. The client requests gzip explicitly (which disables net/http's
// automatic handling) so that compression stays observable in logs.
package gzipbody

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Reader wraps a response body, decompressing when the Content-Encoding
// header says gzip. The returned ReadCloser closes both the gzip reader
// and the underlying body. Identity-encoded bodies pass through
// unchanged.
func Reader(resp *http.Response) (io.ReadCloser, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return resp.Body, nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip response body: %w", err)
	}
	return &gzipReadCloser{zr: zr, body: resp.Body}, nil
}

type gzipReadCloser struct {
	zr   *gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	berr := g.body.Close()
	if zerr != nil {
		return zerr
	}
	return berr
}
