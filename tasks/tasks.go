package tasks

import "encoding/json"

// Queue names. Producers LPUSH JSON payloads; the worker BRPOPs them.
const (
	// QueueAssetCleanup carries media-store deletions that should not block
	// the request path (asset cleanup after a video delete).
	QueueAssetCleanup = "q_asset_cleanup"
)

// AssetCleanupPayload is the payload for QueueAssetCleanup.
type AssetCleanupPayload struct {
	AssetURLs []string `json:"asset_urls"`
}

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
