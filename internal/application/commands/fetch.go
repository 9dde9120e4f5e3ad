package commands

import (
	"context"
	"fmt"

	"figsync/internal/application"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// FetchDocumentResult contains the fetched or cache-loaded document.
type FetchDocumentResult struct {
	File      *domain.File
	FromCache bool
	Message   string
}

// FetchDocumentCommand fetches the document graph from the remote API,
// or loads the local cache when the user explicitly asked for it.
type FetchDocumentCommand struct {
	api      ports.DesignAPI
	store    ports.AssetStore
	FileID   string
	UseCache bool
}

// NewFetchDocumentCommand creates a new FetchDocumentCommand.
func NewFetchDocumentCommand(api ports.DesignAPI, store ports.AssetStore, fileID string, useCache bool) *FetchDocumentCommand {
	return &FetchDocumentCommand{api: api, store: store, FileID: fileID, UseCache: useCache}
}

// Validate checks the command's inputs.
func (c *FetchDocumentCommand) Validate() error {
	if !c.UseCache && c.FileID == "" {
		return &application.ValidationError{Field: "fileID", Message: "file id is required for a remote fetch"}
	}
	return nil
}

// Execute runs the fetch. A remote fetch overwrites the cache only
// after the payload deserialized fully, so a decode failure never
// corrupts the previous cache. Loading from cache never touches the
// network.
func (c *FetchDocumentCommand) Execute(ctx context.Context) (*FetchDocumentResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.UseCache {
		raw, err := c.store.LoadDocumentCache()
		if err != nil {
			return nil, fmt.Errorf("load cached document: %w", err)
		}
		if raw == nil {
			return nil, application.ErrNoCache
		}
		file, err := domain.DecodeFile(raw)
		if err != nil {
			return nil, &application.DecodeError{Op: "decode cached document", Err: err}
		}
		return &FetchDocumentResult{
			File:      file,
			FromCache: true,
			Message:   fmt.Sprintf("Loaded cached document %q (version %s)", file.Name, file.Version),
		}, nil
	}

	raw, err := c.api.FetchFileRaw(ctx, c.FileID)
	if err != nil {
		return nil, err
	}
	file, err := domain.DecodeFile(raw)
	if err != nil {
		return nil, &application.DecodeError{Op: "decode document", Err: err}
	}
	if err := c.store.SaveDocumentCache(raw); err != nil {
		return nil, fmt.Errorf("persist document cache: %w", err)
	}

	return &FetchDocumentResult{
		File:    file,
		Message: fmt.Sprintf("Fetched document %q (version %s)", file.Name, file.Version),
	}, nil
}
