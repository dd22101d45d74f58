package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the textual storage format for every timestamp in the
// system: day-month-year with second precision and no timezone.
const TimeLayout = "02-01-06 15:04:05"

// Timestamp is a second-precision timestamp persisted and serialized in the
// fixed TimeLayout format.
type Timestamp struct {
	time.Time
}

// Now returns the current UTC time truncated to second precision.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

// Value implements driver.Valuer, emitting the fixed storage format.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Format(TimeLayout), nil
}

// Scan implements sql.Scanner. The driver may hand back a time.Time when the
// DSN enables time parsing, or the raw column text otherwise.
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.Truncate(time.Second)
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("cannot scan %T into Timestamp", src)
}

func (t *Timestamp) parse(s string) error {
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON emits the storage format as a JSON string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

// UnmarshalJSON accepts the storage format, and null for a zero timestamp.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(s)
}
