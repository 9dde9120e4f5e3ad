package commands

import (
	"context"
	"fmt"

	"figsync/internal/application"
	"figsync/internal/domain"
)

// ClassifyResult lists the nodes that need server-side rendering.
type ClassifyResult struct {
	Candidates        []domain.RenderCandidate
	MissingComponents map[string]bool
	Message           string
}

// ClassifyCommand computes render candidates for a document. Pure:
// the same document and page filter always produce the same list.
type ClassifyCommand struct {
	File    *domain.File
	PageIDs map[string]bool
}

// NewClassifyCommand creates a new ClassifyCommand.
func NewClassifyCommand(file *domain.File, pageIDs map[string]bool) *ClassifyCommand {
	return &ClassifyCommand{File: file, PageIDs: pageIDs}
}

// Validate checks the command's inputs.
func (c *ClassifyCommand) Validate() error {
	if c.File == nil {
		return &application.ValidationError{Field: "file", Message: "document is required"}
	}
	return nil
}

// Execute runs the classifier.
func (c *ClassifyCommand) Execute(_ context.Context) (*ClassifyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	missing := c.File.MissingComponents()
	candidates := domain.RenderCandidates(c.File, missing, c.PageIDs)

	subs, exports := 0, 0
	for _, cand := range candidates {
		if cand.Reason == domain.RenderSubstitution {
			subs++
		} else {
			exports++
		}
	}

	return &ClassifyResult{
		Candidates:        candidates,
		MissingComponents: missing,
		Message:           fmt.Sprintf("%d nodes need rendering (%d substitutions, %d exports)", len(candidates), subs, exports),
	}, nil
}
