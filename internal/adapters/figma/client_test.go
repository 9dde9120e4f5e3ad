package figma

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"figsync/internal/application"
)

func TestFetchFileRaw(t *testing.T) {
	const body = `{"name": "Demo", "document": {"id": "0:0"}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Figma-Token"); got != "secret" {
			t.Errorf("token header = %q, want secret", got)
		}
		if r.URL.Path != "/v1/files/abc123" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("geometry"); got != "paths" {
			t.Errorf("geometry = %q, want paths", got)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	raw, err := c.FetchFileRaw(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != body {
		t.Errorf("raw body altered: %q", raw)
	}
}

func TestFetchFileRawTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad")
	_, err := c.FetchFileRaw(context.Background(), "abc123")
	if !errors.Is(err, application.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	var te *application.TransportError
	if !errors.As(err, &te) || te.Status != http.StatusForbidden {
		t.Errorf("status not preserved: %v", err)
	}
}

func TestRenderNodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/abc123" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ids") != "1:2,1:3" {
			t.Errorf("ids = %q", q.Get("ids"))
		}
		if q.Get("scale") != "2" {
			t.Errorf("scale = %q", q.Get("scale"))
		}
		if q.Get("use_absolute_bounds") != "true" {
			t.Errorf("use_absolute_bounds = %q", q.Get("use_absolute_bounds"))
		}
		w.Write([]byte(`{"err": null, "images": {"1:2": "https://cdn/x.png", "1:3": ""}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	urls, err := c.RenderNodes(context.Background(), "abc123", []string{"1:2", "1:3"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if urls["1:2"] != "https://cdn/x.png" {
		t.Errorf("url for 1:2 = %q", urls["1:2"])
	}
	// Empty URL marks a per-node render failure, not a request error.
	if got, ok := urls["1:3"]; !ok || got != "" {
		t.Errorf("expected empty url for 1:3, got %q (present=%v)", got, ok)
	}
}

func TestRenderNodesEmptyInput(t *testing.T) {
	c := NewClient("http://unused.invalid", "secret")
	urls, err := c.RenderNodes(context.Background(), "abc123", nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("expected no urls, got %v", urls)
	}
}

func TestRenderNodesDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	_, err := c.RenderNodes(context.Background(), "abc123", []string{"1:2"}, 1)
	if !errors.Is(err, application.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestListImageFills(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/files/abc123/images" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"meta": {"images": {"fill-a": "https://cdn/a.png"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	fills, err := c.ListImageFills(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fills["fill-a"] != "https://cdn/a.png" {
		t.Errorf("fills = %v", fills)
	}
}

func TestDownload(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Figma-Token") != "" {
			t.Error("download must not send the API token to the CDN")
		}
		w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient("http://unused.invalid", "secret")
	data, err := c.Download(context.Background(), srv.URL+"/blob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("payload altered")
	}
}

func TestDownloadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("http://unused.invalid", "secret")
	_, err := c.Download(context.Background(), srv.URL+"/blob")
	if !errors.Is(err, application.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
