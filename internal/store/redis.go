package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nitesh/trends_service/pkg/models"
)

// RedisStore appends trend records to a Redis stream named after the table.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Insert adds one stream entry per record inside MULTI/EXEC, so the batch
// lands as a whole or not at all.
func (r *RedisStore) Insert(ctx context.Context, table string, records []models.TrendRecord) error {
	if len(records) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, rec := range records {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: table,
			Values: recordValues(rec),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("xadd %d trends to %s: %w", len(records), table, err)
	}
	return nil
}

// recordValues flattens a record into stream fields; null columns are left out.
func recordValues(rec models.TrendRecord) map[string]any {
	values := map[string]any{
		"source":    rec.Source.String(),
		"topic":     rec.Topic,
		"timestamp": rec.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if rec.DetailsURL.Valid {
		values["details_url"] = rec.DetailsURL.String
	}
	if rec.Details.Valid {
		values["details"] = rec.Details.String
	}
	return values
}
