package domain

// Chunk splits ids into contiguous chunks of at most max elements,
// preserving order. The last chunk holds the remainder; no chunk is
// empty unless ids is empty. A single render request has a hard upper
// bound on how many node ids it may carry, so splitting happens before
// sending, never as a reaction to a rejection.
func Chunk(ids []string, max int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if max <= 0 || max >= len(ids) {
		return [][]string{ids}
	}
	chunks := make([][]string, 0, (len(ids)+max-1)/max)
	for start := 0; start < len(ids); start += max {
		end := start + max
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
