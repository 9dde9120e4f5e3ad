package domain

import (
	"encoding/json"
	"fmt"
)

// Node type strings as they appear in the remote document JSON.
const (
	NodeTypeDocument  = "DOCUMENT"
	NodeTypeCanvas    = "CANVAS"
	NodeTypeFrame     = "FRAME"
	NodeTypeGroup     = "GROUP"
	NodeTypeComponent = "COMPONENT"
	NodeTypeInstance  = "INSTANCE"
	NodeTypeVector    = "VECTOR"
	NodeTypeText      = "TEXT"
	NodeTypeBoolOp    = "BOOLEAN_OPERATION"
)

// File is the full remote document graph for one design file.
// Unknown and null JSON fields are ignored; missing fields default.
type File struct {
	Name       string               `json:"name"`
	Version    string               `json:"version"`
	Document   *Node                `json:"document"`
	Components map[string]Component `json:"components"`
}

// Component is a component definition referenced by instance nodes.
type Component struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Node is one element of the document graph.
type Node struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Children         []*Node         `json:"children"`
	ComponentID      string          `json:"componentId"`
	BooleanOperation string          `json:"booleanOperation"`
	Visible          *bool           `json:"visible"`
	Fills            []Paint         `json:"fills"`
	Effects          []Effect        `json:"effects"`
	ExportSettings   []ExportSetting `json:"exportSettings"`
}

// Paint is a fill or stroke entry on a node.
type Paint struct {
	Type     string `json:"type"`
	Visible  *bool  `json:"visible"`
	ImageRef string `json:"imageRef"`
}

// Effect is a visual effect entry on a node.
type Effect struct {
	Type    string `json:"type"`
	Visible *bool  `json:"visible"`
}

// ExportSetting marks a node the user flagged for rasterized export.
type ExportSetting struct {
	Format string `json:"format"`
	Suffix string `json:"suffix"`
}

// DecodeFile deserializes a raw document response.
func DecodeFile(raw []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if f.Document == nil {
		return nil, fmt.Errorf("decode document: missing document root")
	}
	return &f, nil
}

// IsVisible reports whether the node is visible. The remote API omits
// the field for visible nodes.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// Pages returns the document's top-level canvas nodes in document order.
func (f *File) Pages() []*Node {
	if f.Document == nil {
		return nil
	}
	var pages []*Node
	for _, child := range f.Document.Children {
		if child.Type == NodeTypeCanvas {
			pages = append(pages, child)
		}
	}
	return pages
}

// Walk visits n and its descendants depth-first in document order.
// The visit function returns false to skip a node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// FindNode returns the node with the given id, or nil.
func (f *File) FindNode(id string) *Node {
	var found *Node
	f.Document.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// MissingComponents returns the set of component ids referenced by
// instance nodes but absent from the file's component definitions.
func (f *File) MissingComponents() map[string]bool {
	missing := make(map[string]bool)
	f.Document.Walk(func(n *Node) bool {
		if n.Type == NodeTypeInstance && n.ComponentID != "" {
			if _, ok := f.Components[n.ComponentID]; !ok {
				missing[n.ComponentID] = true
			}
		}
		return true
	})
	return missing
}

// ImageFillRefs returns the ordered, de-duplicated image fill references
// used by visible nodes on the given pages. An empty page filter means
// all pages.
func (f *File) ImageFillRefs(pageIDs map[string]bool) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, page := range f.Pages() {
		if len(pageIDs) > 0 && !pageIDs[page.ID] {
			continue
		}
		page.Walk(func(n *Node) bool {
			if !n.IsVisible() {
				return false
			}
			for _, p := range n.Fills {
				if p.Type != "IMAGE" || p.ImageRef == "" {
					continue
				}
				if p.Visible != nil && !*p.Visible {
					continue
				}
				if !seen[p.ImageRef] {
					seen[p.ImageRef] = true
					refs = append(refs, p.ImageRef)
				}
			}
			return true
		})
	}
	return refs
}
