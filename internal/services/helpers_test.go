package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Belphemur/SuperMusic/internal/client"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// fakeLookup returns a canned reply and records every request.
type fakeLookup struct {
	mu    sync.Mutex
	reply *models.LookupReply
	err   error
	calls []models.DownloadRequest
}

func (f *fakeLookup) Lookup(_ context.Context, req models.DownloadRequest) (*models.LookupReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeMedia serves a single canned media response.
type fakeMedia struct {
	body        io.ReadCloser
	length      uint64
	status      int
	contentType string
	err         error
	opened      []string
}

func newFakeMedia(data []byte, length uint64) *fakeMedia {
	return &fakeMedia{body: io.NopCloser(bytes.NewReader(data)), length: length, status: 200}
}

func (f *fakeMedia) OpenMedia(_ context.Context, mediaURL string) (*client.MediaStream, error) {
	f.opened = append(f.opened, mediaURL)
	if f.err != nil {
		return nil, f.err
	}
	return &client.MediaStream{
		Body:          f.body,
		ContentLength: f.length,
		ContentType:   f.contentType,
		StatusCode:    f.status,
	}, nil
}

// memorySink is an in-memory destination that remembers whether it was created and closed.
type memorySink struct {
	bytes.Buffer
	created  bool
	closed   bool
	writeErr error
	closeErr error
}

func (m *memorySink) factory() SinkFactory {
	return func() (io.WriteCloser, error) {
		m.created = true
		return m, nil
	}
}

func (m *memorySink) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.Buffer.Write(p)
}

func (m *memorySink) Close() error {
	m.closed = true
	return m.closeErr
}

// fakeSearchSource serves canned payloads per platform.
type fakeSearchSource struct {
	mu       sync.Mutex
	payloads map[models.Platform]string
	errs     map[models.Platform]error
	queries  []models.Platform
	keywords []string
	forgets  []models.Platform
}

func (f *fakeSearchSource) ForgetSearch(_ context.Context, platform models.Platform, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgets = append(f.forgets, platform)
}

func (f *fakeSearchSource) Search(_ context.Context, platform models.Platform, keyword string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, platform)
	f.keywords = append(f.keywords, keyword)
	if err := f.errs[platform]; err != nil {
		return nil, err
	}
	payload, ok := f.payloads[platform]
	if !ok {
		return nil, errors.New("no payload configured")
	}
	return []byte(payload), nil
}

func getCounterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	return getCounterValue(c)
}
