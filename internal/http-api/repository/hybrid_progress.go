package repository

import (
	"context"
	"log/slog"

	"mangareader/internal/http-api/models"
)

// HybridProgressRepo pairs the durable postgres store with the redis hot
// copy. Writes go to postgres first (required), then best-effort to redis;
// reads try redis and fall back to postgres on a miss. Redis may be nil, in
// which case everything goes straight to postgres.
type HybridProgressRepo struct {
	postgres *ProgressPostgresRepo
	redis    *ProgressRedisRepo
	logger   *slog.Logger
}

func NewHybridProgressRepo(postgres *ProgressPostgresRepo, redis *ProgressRedisRepo, logger *slog.Logger) *HybridProgressRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &HybridProgressRepo{postgres: postgres, redis: redis, logger: logger}
}

func (r *HybridProgressRepo) Save(ctx context.Context, p *models.ReadingProgress) error {
	if err := r.postgres.Save(ctx, p); err != nil {
		return err
	}
	if r.redis != nil {
		if err := r.redis.Save(ctx, p); err != nil {
			// Hot copy only; postgres already has the write.
			r.logger.Warn("redis progress write failed",
				"user_id", p.UserID,
				"manga_id", p.MangaID,
				"error", err,
			)
		}
	}
	return nil
}

func (r *HybridProgressRepo) Get(ctx context.Context, userID, mangaID string) (*models.ReadingProgress, error) {
	if r.redis != nil {
		p, err := r.redis.Get(ctx, userID, mangaID)
		if err != nil {
			r.logger.Warn("redis progress read failed", "user_id", userID, "error", err)
		} else if p != nil {
			return p, nil
		}
	}
	return r.postgres.Get(ctx, userID, mangaID)
}

func (r *HybridProgressRepo) ListByUser(ctx context.Context, userID string) ([]models.ReadingProgress, error) {
	return r.postgres.ListByUser(ctx, userID)
}
