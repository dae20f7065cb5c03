package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is advertised on API requests that do not set their own.
const acceptEncoding = "gzip, br, zstd"

// decoders maps a Content-Encoding token to its decompressor.
var decoders = map[string]func(io.Reader) (io.ReadCloser, error){
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport negotiates gzip, brotli and zstd with the lookup and
// search APIs and hands callers the decoded body. It is not used for media
// streams, whose Content-Length must stay intact.
type compressionTransport struct {
	transport http.RoundTripper
}

func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{transport: base}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decode, ok := decoders[outermostEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}

	reader, err := decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = &decompressReadCloser{reader: reader, originalBody: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decompressReadCloser closes both the decompressor and the wire body.
type decompressReadCloser struct {
	reader       io.ReadCloser
	originalBody io.ReadCloser
}

func (d *decompressReadCloser) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decompressReadCloser) Close() error {
	readerErr := d.reader.Close()
	bodyErr := d.originalBody.Close()
	if readerErr != nil {
		return readerErr
	}
	return bodyErr
}

// outermostEncoding returns the last coding of a Content-Encoding list, lowercased.
// Codings are listed in the order they were applied, so the last one is removed first.
func outermostEncoding(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if i := strings.LastIndexByte(header, ','); i >= 0 {
		header = header[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(header))
}
