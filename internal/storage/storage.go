// Package storage connects the object storage that generated images are published to
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnendingLoop/ImageOutputs/internal/config"
	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/UnendingLoop/ImageOutputs/internal/storage/miniostorage"
	"github.com/wb-go/wbf/zlog"
)

// NewImgStorage connects to object storage making up to cfg.ConnectAttempts attempts.
// A bad credential file is never retried.
func NewImgStorage(ctx context.Context, cfg config.Config) (*miniostorage.MinioObjectStorage, error) {
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		zlog.Logger.Info().Int("attempt", i).Msg("Connecting to IMG-storage...")

		client, err := miniostorage.NewMinioClient(ctx, cfg)
		if err == nil {
			zlog.Logger.Info().Str("bucket", client.Bucket()).Msg("Successfully connected IMG-storage!")
			return client, nil
		}
		if errors.Is(err, model.ErrBadCredentials) {
			return nil, err
		}

		lastErr = err
		if i == attempts {
			break
		}

		zlog.Logger.Warn().Err(err).Msgf("Failed to init connection to IMG-storage. Next retry in %v...", cfg.ConnectDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.ConnectDelay):
		}
	}

	return nil, fmt.Errorf("IMG-storage is unreachable after %d attempts: %w", attempts, lastErr)
}
