package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/habitquest/internal/catalog"
	"github.com/osse101/habitquest/internal/character"
)

// SyncRewardCatalog loads the reward catalog file and upserts every entry.
// Rewards removed from the file stay in the database so existing inventory keeps its references.
func SyncRewardCatalog(ctx context.Context, service character.Service, path string) (int, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	rewards, err := catalog.NewLoader(path).Rewards()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	synced, err := service.SyncCatalog(ctx, rewards)
	if err != nil {
		return synced, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	slog.Info(LogMsgCatalogSynced, "count", synced)
	return synced, nil
}
