package domain

import (
	"fmt"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		max       int
		wantSizes []int
	}{
		{name: "empty input", count: 0, max: 10, wantSizes: nil},
		{name: "under limit", count: 5, max: 10, wantSizes: []int{5}},
		{name: "exact limit", count: 10, max: 10, wantSizes: []int{10}},
		{name: "one over", count: 11, max: 10, wantSizes: []int{10, 1}},
		{name: "remainder chunk", count: 650, max: 300, wantSizes: []int{300, 300, 50}},
		{name: "no limit", count: 7, max: 0, wantSizes: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.count)
			for i := range ids {
				ids[i] = fmt.Sprintf("1:%d", i)
			}

			chunks := Chunk(ids, tt.max)

			if len(chunks) != len(tt.wantSizes) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.wantSizes))
			}
			var flat []string
			for i, chunk := range chunks {
				if len(chunk) == 0 {
					t.Errorf("chunk %d is empty", i)
				}
				if len(chunk) != tt.wantSizes[i] {
					t.Errorf("chunk %d has %d ids, want %d", i, len(chunk), tt.wantSizes[i])
				}
				flat = append(flat, chunk...)
			}
			if len(flat) != len(ids) {
				t.Fatalf("concatenation has %d ids, want %d", len(flat), len(ids))
			}
			for i := range ids {
				if flat[i] != ids[i] {
					t.Fatalf("order broken at %d: got %s, want %s", i, flat[i], ids[i])
				}
			}
		})
	}
}
