package domain

// AssetState classifies a local asset file. Derived on every run from
// the file itself; there is no manifest of download history.
type AssetState int

const (
	AssetAbsent AssetState = iota
	AssetPlaceholder
	AssetValid
)

func (s AssetState) String() string {
	switch s {
	case AssetAbsent:
		return "absent"
	case AssetPlaceholder:
		return "placeholder"
	case AssetValid:
		return "valid"
	default:
		return "unknown"
	}
}

// AssetKind distinguishes bitmap fills from server-rendered images.
// It drives the import-metadata profile applied after download.
type AssetKind int

const (
	AssetFill AssetKind = iota
	AssetRendered
)

func (k AssetKind) String() string {
	switch k {
	case AssetFill:
		return "fill"
	case AssetRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// DownloadItem is one pending transfer. It exists only for the
// duration of a download pass.
type DownloadItem struct {
	URL  string
	Dest string
	Kind AssetKind
}

// DownloadResult is the per-item outcome of a download pass.
type DownloadResult struct {
	Item DownloadItem
	Err  error
}

// DownloadReport collects every item's outcome. A single item's
// failure never aborts the pass.
type DownloadReport struct {
	Results []DownloadResult
}

// Succeeded counts items that downloaded and wrote cleanly.
func (r *DownloadReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the items that could not be completed.
func (r *DownloadReport) Failed() []DownloadResult {
	var out []DownloadResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// IndexedAsset is one row of the rebuildable asset index.
type IndexedAsset struct {
	Path string
	Kind string
	Name string
	Size int64
}

// IndexStats summarizes one index rebuild.
type IndexStats struct {
	Indexed int
	Removed int
}
