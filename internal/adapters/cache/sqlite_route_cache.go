package cache

import (
	"context"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/obs"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed cache for external route data.
// Keys are expected to be consistent (already fingerprinted) by the caller.
type SqliteRouteCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSqliteRouteCache(db *sql.DB, ttl time.Duration) *SqliteRouteCache {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &SqliteRouteCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch cached route data; expired rows count as a miss.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (_ *domain.ExternalRouteData, err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT
        payload,
        stored_at
    FROM route_cache
    WHERE cache_key = ?;
	`

	var payload string
	var storedAt int64
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	if s.now().Sub(time.Unix(storedAt, 0)) > s.TTL {
		return nil, nil
	}

	var data domain.ExternalRouteData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("get route cache: decode payload: %w", err)
	}

	return &data, nil
}

// Store route data, replacing any previous entry for key.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, data *domain.ExternalRouteData) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	if data == nil {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("insert route cache: encode payload: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        cache_key,
        payload,
        stored_at
    )
    VALUES (?, ?, ?);
	`, key, string(payload), s.now().Unix())
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
