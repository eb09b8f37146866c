package models

import (
	"time"

	dbtypes "github.com/nitesh/trends_service/internal/db"
)

// Source tags where a trend record came from.
type Source string

const (
	SourceReddit       Source = "reddit"
	SourceGoogleTrends Source = "google_trends"
)

func (s Source) String() string { return string(s) }

// TrendRecord is one normalized trending topic destined for the trends table.
// Records are built fresh on every request and never read back.
type TrendRecord struct {
	Source    Source    `db:"source" json:"source"`
	Topic     string    `db:"topic" json:"topic"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`

	// DetailsURL is only set for reddit, Details only for google_trends.
	DetailsURL dbtypes.NullText `db:"details_url" json:"details_url"`
	Details    dbtypes.NullText `db:"details" json:"details"`
}
