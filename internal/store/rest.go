package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"github.com/nitesh/trends_service/pkg/models"
)

// RestStore inserts rows through Supabase's PostgREST endpoint at
// {baseURL}/rest/v1 using the anon key.
type RestStore struct {
	client *postgrest.Client
}

func NewRestStore(baseURL, apiKey string) *RestStore {
	restURL := strings.TrimRight(baseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        apiKey,
		"Authorization": "Bearer " + apiKey,
	})
	return &RestStore{client: client}
}

// Insert posts all records in one request. postgrest-go takes no context,
// so ctx is only checked before the call.
func (r *RestStore) Insert(ctx context.Context, table string, records []models.TrendRecord) error {
	if len(records) == 0 {
		return nil
	}
	if r.client.ClientError != nil {
		return fmt.Errorf("rest client: %w", r.client.ClientError)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := r.client.From(table).Insert(records, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("rest insert %d trends into %s: %w", len(records), table, err)
	}
	return nil
}
