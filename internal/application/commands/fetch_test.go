package commands

import (
	"context"
	"errors"
	"testing"

	"figsync/internal/application"
)

const fetchTestDoc = `{"name": "Demo", "version": "7", "document": {"id": "0:0", "type": "DOCUMENT"}}`

func TestFetchDocument(t *testing.T) {
	api := &fakeAPI{raw: []byte(fetchTestDoc)}
	store := newCommandStore(t)

	result, err := NewFetchDocumentCommand(api, store, "abc", false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.File.Name != "Demo" || result.FromCache {
		t.Errorf("unexpected result: %+v", result)
	}

	raw, err := store.LoadDocumentCache()
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != fetchTestDoc {
		t.Errorf("cache not verbatim: %s", raw)
	}
}

func TestFetchDocumentTransportError(t *testing.T) {
	api := &fakeAPI{rawErr: &application.TransportError{Op: "fetch file", Status: 500}}
	store := newCommandStore(t)

	_, err := NewFetchDocumentCommand(api, store, "abc", false).Execute(context.Background())
	if !errors.Is(err, application.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestFetchDocumentDecodeErrorKeepsCache(t *testing.T) {
	store := newCommandStore(t)
	if err := store.SaveDocumentCache([]byte(fetchTestDoc)); err != nil {
		t.Fatal(err)
	}

	api := &fakeAPI{raw: []byte("<html>maintenance</html>")}
	_, err := NewFetchDocumentCommand(api, store, "abc", false).Execute(context.Background())
	if !errors.Is(err, application.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if errors.Is(err, application.ErrTransport) {
		t.Error("decode failure must be distinguishable from transport failure")
	}

	// The previous cache survives a decode failure.
	raw, err := store.LoadDocumentCache()
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != fetchTestDoc {
		t.Errorf("cache corrupted by failed fetch: %s", raw)
	}
}

func TestFetchDocumentFromCache(t *testing.T) {
	store := newCommandStore(t)
	if err := store.SaveDocumentCache([]byte(fetchTestDoc)); err != nil {
		t.Fatal(err)
	}
	api := &fakeAPI{rawErr: errors.New("network must not be touched")}

	result, err := NewFetchDocumentCommand(api, store, "abc", true).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FromCache || result.File.Version != "7" {
		t.Errorf("unexpected result: %+v", result)
	}
	if api.fetchCalls != 0 {
		t.Error("cache load made a network call")
	}
}

func TestFetchDocumentNoCache(t *testing.T) {
	store := newCommandStore(t)
	api := &fakeAPI{}

	_, err := NewFetchDocumentCommand(api, store, "abc", true).Execute(context.Background())
	if !errors.Is(err, application.ErrNoCache) {
		t.Fatalf("expected ErrNoCache, got %v", err)
	}
}
