package main

import (
	"context"
	"log"

	"github.com/princev89/chai-backend/internal/platform"
	"github.com/princev89/chai-backend/media"
	"github.com/princev89/chai-backend/tasks"
	"github.com/princev89/chai-backend/worker"
)

func main() {
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	mediaStore, err := media.NewS3Store(ctx)
	if err != nil {
		log.Fatalf("Failed to create media store: %v", err)
	}

	processor := worker.NewProcessor(rdb, mediaStore)
	processor.Register(tasks.QueueAssetCleanup, processor.HandleAssetCleanup)

	processor.Listen(ctx, tasks.QueueAssetCleanup)
}
