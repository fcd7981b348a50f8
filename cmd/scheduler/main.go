package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/princev89/chai-backend/videos"
	"github.com/robfig/cron/v3"
)

// Multipart uploads are spooled to the upload dir before they reach the
// media store. The request path removes them when it finishes, but a crashed
// or killed request can leave files behind, so this service sweeps anything
// older than maxAge on a schedule.
const maxAge = time.Hour

func main() {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		sweepUploadDir(videos.UploadDir())
	})
	if err != nil {
		log.Fatalf("Error scheduling upload sweep: %v", err)
	}

	c.Start()
	defer c.Stop()

	log.Printf("Scheduler started, sweeping %s hourly", videos.UploadDir())
	select {}
}

func sweepUploadDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Error reading upload dir %s: %v", dir, err)
		return
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Error removing stale upload %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("Removed %d stale uploads from %s", removed, dir)
	}
}
