package domain

// RenderReason says why a node needs a server-rendered bitmap.
type RenderReason int

const (
	// RenderSubstitution marks a node whose visual content cannot be
	// reproduced locally and must be replaced wholesale by a bitmap.
	RenderSubstitution RenderReason = iota
	// RenderExport marks a node the user explicitly flagged for export.
	RenderExport
)

func (r RenderReason) String() string {
	switch r {
	case RenderSubstitution:
		return "substitution"
	case RenderExport:
		return "export"
	default:
		return "unknown"
	}
}

// RenderCandidate is one node that requires server-side rendering.
type RenderCandidate struct {
	NodeID string
	Reason RenderReason
}

// Effect types the local renderer can reproduce. Everything else forces
// substitution.
var supportedEffects = map[string]bool{
	"DROP_SHADOW":  true,
	"INNER_SHADOW": true,
}

// NeedsSubstitution reports whether a node uses visual features the
// local renderer cannot reproduce, or references a component definition
// missing from the document.
func NeedsSubstitution(n *Node, missingComponents map[string]bool) bool {
	if n.Type == NodeTypeBoolOp {
		return true
	}
	if n.Type == NodeTypeInstance && missingComponents[n.ComponentID] {
		return true
	}
	for _, e := range n.Effects {
		if e.Visible != nil && !*e.Visible {
			continue
		}
		if !supportedEffects[e.Type] {
			return true
		}
	}
	return false
}

// RenderCandidates walks the file in document order and returns the
// ordered, de-duplicated list of nodes that need server-side rendering.
// missingComponents is the set of externally-referenced-but-undefined
// component ids; pageIDs restricts the walk to those pages (empty means
// all). Pure and deterministic for a given file and filter.
func RenderCandidates(f *File, missingComponents map[string]bool, pageIDs map[string]bool) []RenderCandidate {
	var out []RenderCandidate
	seen := make(map[string]bool)

	add := func(id string, reason RenderReason) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, RenderCandidate{NodeID: id, Reason: reason})
	}

	for _, page := range f.Pages() {
		if len(pageIDs) > 0 && !pageIDs[page.ID] {
			continue
		}
		page.Walk(func(n *Node) bool {
			if !n.IsVisible() {
				return false
			}
			if NeedsSubstitution(n, missingComponents) {
				add(n.ID, RenderSubstitution)
				// The rendered bitmap replaces the whole subtree.
				return false
			}
			if len(n.ExportSettings) > 0 {
				add(n.ID, RenderExport)
			}
			return true
		})
	}

	return out
}
