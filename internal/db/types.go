package db

import (
	"database/sql/driver"
	"encoding/json"
)

// NullText is a nullable text column. The zero value is NULL, and it
// marshals to JSON null so REST inserts send an explicit null as well.
type NullText struct {
	String string
	Valid  bool
}

// Text returns a non-null NullText holding s.
func Text(s string) NullText {
	return NullText{String: s, Valid: true}
}

// Value implements driver.Valuer
func (n NullText) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.String, nil
}

func (n NullText) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}
