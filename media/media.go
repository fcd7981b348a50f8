package media

import "context"

// Asset is what an upload yields: a publicly addressable URL and, for video
// files, the duration in seconds (zero for images).
type Asset struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"`
}

// Store is the binary-asset hosting service. Upload takes a path to a local
// temp file; Delete takes the URL a previous Upload returned. Delete is
// best-effort at every call site: failures are logged, never surfaced to the
// user-facing operation.
type Store interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, assetURL string) error
}
