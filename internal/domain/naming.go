package domain

import (
	"fmt"
	"strings"
)

const unsafeChars = `/\:*?"<>|`

// SafeFileName replaces filesystem-unsafe characters in a node id or
// name with underscores so paths derive deterministically from the
// document.
func SafeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(unsafeChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "_"
	}
	return out
}

// NameAllocator hands out collision-free names within one output
// directory. The first claim of a base name returns it unchanged;
// later claims get a numeric suffix ("Name", "Name 2", "Name 3", ...).
type NameAllocator struct {
	used map[string]int
}

// NewNameAllocator creates an empty allocator.
func NewNameAllocator() *NameAllocator {
	return &NameAllocator{used: make(map[string]int)}
}

// Claim reserves a unique name derived from base.
func (a *NameAllocator) Claim(base string) string {
	base = SafeFileName(base)
	n := a.used[base]
	a.used[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s %d", base, n+1)
}
