package commands

import (
	"context"
	"fmt"

	"figsync/internal/application"
	"figsync/internal/ports"
)

// ReconcileResult lists the orphan artifacts that were deleted.
type ReconcileResult struct {
	Deleted []string
	Message string
}

// ReconcileCommand diffs the pre-generation artifact snapshot against
// the post-generation one and deletes the orphans. It trusts the two
// snapshots completely and never consults the document.
type ReconcileCommand struct {
	store  ports.AssetStore
	Before map[string]bool
	After  map[string]bool
}

// NewReconcileCommand creates a new ReconcileCommand.
func NewReconcileCommand(store ports.AssetStore, before, after map[string]bool) *ReconcileCommand {
	return &ReconcileCommand{store: store, Before: before, After: after}
}

// Validate checks the command's inputs.
func (c *ReconcileCommand) Validate() error {
	if c.Before == nil {
		return &application.ValidationError{Field: "before", Message: "pre-generation snapshot is required"}
	}
	if c.After == nil {
		return &application.ValidationError{Field: "after", Message: "post-generation snapshot is required"}
	}
	return nil
}

// Execute runs the reconciliation.
func (c *ReconcileCommand) Execute(_ context.Context) (*ReconcileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	deleted := c.store.Reconcile(c.Before, c.After)
	return &ReconcileResult{
		Deleted: deleted,
		Message: fmt.Sprintf("Deleted %d orphan artifacts", len(deleted)),
	}, nil
}
