package worker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/princev89/chai-backend/tasks"
)

// HandleAssetCleanup processes tasks from QueueAssetCleanup. Each asset is
// deleted independently; a failed delete is logged and the rest still run.
// Cleanup is best-effort end to end, so the task itself never fails.
func (p *Processor) HandleAssetCleanup(ctx context.Context, payload string) error {
	var task tasks.AssetCleanupPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	for _, assetURL := range task.AssetURLs {
		if assetURL == "" {
			continue
		}
		if err := p.Media.Delete(ctx, assetURL); err != nil {
			log.Printf("Error deleting asset %s: %v", assetURL, err)
			continue
		}
		log.Printf("Deleted asset %s", assetURL)
	}
	return nil
}
