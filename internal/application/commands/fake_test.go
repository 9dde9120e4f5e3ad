package commands

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"figsync/internal/adapters/assetstore"
	"figsync/internal/application"
)

// fakeAPI implements ports.DesignAPI in memory and records every call
// for ordering assertions.
type fakeAPI struct {
	mu sync.Mutex

	raw      []byte
	rawErr   error
	fills    map[string]string
	fillsErr error
	render   map[string]string
	payloads map[string][]byte

	fetchCalls    int
	fillsCalls    int
	renderCalls   [][]string
	renderTimes   []time.Time
	downloadCalls []string
}

func (f *fakeAPI) FetchFileRaw(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.rawErr != nil {
		return nil, f.rawErr
	}
	return f.raw, nil
}

func (f *fakeAPI) RenderNodes(_ context.Context, _ string, ids []string, _ float64) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch := append([]string(nil), ids...)
	f.renderCalls = append(f.renderCalls, batch)
	f.renderTimes = append(f.renderTimes, time.Now())
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if url, ok := f.render[id]; ok {
			out[id] = url
		}
	}
	return out, nil
}

func (f *fakeAPI) ListImageFills(_ context.Context, _ string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fillsCalls++
	if f.fillsErr != nil {
		return nil, f.fillsErr
	}
	return f.fills, nil
}

func (f *fakeAPI) Download(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls = append(f.downloadCalls, url)
	data, ok := f.payloads[url]
	if !ok {
		return nil, &application.TransportError{Op: "download", Status: 404}
	}
	return data, nil
}

// assetBytes is large enough that the oracle classifies the written
// file as Valid.
var assetBytes = bytes.Repeat([]byte{0x89, 0x50, 0x4e, 0x47}, 512)

func newCommandStore(t *testing.T) *assetstore.Store {
	t.Helper()
	s := assetstore.New(t.TempDir(), nil)
	if err := s.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	return s
}

func nodeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("1:%d", i)
	}
	return ids
}
