package ports

import "context"

// DesignAPI is the remote design-document service boundary.
type DesignAPI interface {
	// FetchFileRaw returns the raw document response body verbatim.
	// Errors are transport errors; decoding is the caller's concern.
	FetchFileRaw(ctx context.Context, fileID string) ([]byte, error)

	// RenderNodes asks the server to rasterize the given nodes and
	// returns node id -> image URL. A URL may be the empty string when
	// the server failed to render that node. The caller is responsible
	// for keeping len(ids) within the per-request batch limit.
	RenderNodes(ctx context.Context, fileID string, ids []string, scale float64) (map[string]string, error)

	// ListImageFills returns fill id -> source URL for every bitmap
	// fill referenced by the file.
	ListImageFills(ctx context.Context, fileID string) (map[string]string, error)

	// Download fetches a binary payload from a pre-signed URL.
	Download(ctx context.Context, url string) ([]byte, error)
}
