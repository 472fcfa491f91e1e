package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mangareader/internal/http-api/models"
)

const progressKeyTTL = 90 * 24 * time.Hour

// ProgressRedisRepo is the hot copy of reading progress: a TTL'd hash per
// (user, manga). Entries that age out fall back to postgres.
type ProgressRedisRepo struct {
	client *redis.Client
}

func NewProgressRedisRepo(addr, password string) (*ProgressRedisRepo, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ProgressRedisRepo{client: rdb}, nil
}

func progressKey(userID, mangaID string) string {
	return fmt.Sprintf("progress:user:%s:manga:%s", userID, mangaID)
}

func (r *ProgressRedisRepo) Save(ctx context.Context, p *models.ReadingProgress) error {
	key := progressKey(p.UserID, p.MangaID)
	fields := map[string]any{
		"user_id":      p.UserID,
		"manga_id":     p.MangaID,
		"chapter_id":   p.ChapterID,
		"last_read_at": p.LastReadAt.Format(time.RFC3339Nano),
	}
	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, progressKeyTTL).Err()
}

// Get returns nil, nil when the key is absent; the caller falls back to
// postgres rather than treating a cache miss as an error.
func (r *ProgressRedisRepo) Get(ctx context.Context, userID, mangaID string) (*models.ReadingProgress, error) {
	fields, err := r.client.HGetAll(ctx, progressKey(userID, mangaID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	p := &models.ReadingProgress{
		UserID:    userID,
		MangaID:   mangaID,
		ChapterID: fields["chapter_id"],
	}
	if at, err := time.Parse(time.RFC3339Nano, fields["last_read_at"]); err == nil {
		p.LastReadAt = at
	}
	return p, nil
}

func (r *ProgressRedisRepo) Close() error {
	return r.client.Close()
}
