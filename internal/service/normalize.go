package service

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"

	dbtypes "github.com/nitesh/trends_service/internal/db"
	"github.com/nitesh/trends_service/pkg/models"
)

const (
	redditBaseURL = "https://www.reddit.com"

	// Google Trends bodies are stored verbatim under this topic until the
	// dailytrends format is parsed.
	googleRawTopic = "Raw Google Trends Data"
)

type redditListing struct {
	Data *struct {
		Children []json.RawMessage `json:"children"`
	} `json:"data"`
}

type redditChild struct {
	Data struct {
		Title     string `json:"title"`
		Permalink string `json:"permalink"`
	} `json:"data"`
}

// NormalizeReddit turns a reddit listing into trend records. ok is false when
// the document has no data.children, in which case nothing should be stored.
// Children are decoded one by one; a child that does not decode or lacks a
// title or permalink is skipped.
func NormalizeReddit(body []byte, now time.Time) (records []models.TrendRecord, ok bool) {
	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, false
	}
	if listing.Data == nil || listing.Data.Children == nil {
		return nil, false
	}

	return lo.FilterMap(listing.Data.Children, func(raw json.RawMessage, _ int) (models.TrendRecord, bool) {
		var c redditChild
		if err := json.Unmarshal(raw, &c); err != nil {
			return models.TrendRecord{}, false
		}
		if c.Data.Title == "" || c.Data.Permalink == "" {
			return models.TrendRecord{}, false
		}
		return models.TrendRecord{
			Source:     models.SourceReddit,
			Topic:      c.Data.Title,
			Timestamp:  now,
			DetailsURL: dbtypes.Text(redditBaseURL + c.Data.Permalink),
		}, true
	}), true
}

// NormalizeGoogle wraps the whole upstream body into a single record.
func NormalizeGoogle(body string, now time.Time) []models.TrendRecord {
	return []models.TrendRecord{{
		Source:    models.SourceGoogleTrends,
		Topic:     googleRawTopic,
		Timestamp: now,
		Details:   dbtypes.Text(body),
	}}
}
