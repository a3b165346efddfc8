package timeutil

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Time is a timestamp that stores as UTC and renders in the configured
// location. Using one type for every timestamp column keeps output
// formatting uniform across record kinds.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{t}
}

// MarshalJSON renders the timestamp in the configured location.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.In(Location()).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON accepts RFC3339 timestamps.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", s)
	}
	parsed, err := ParseTime(s[1:len(s)-1], Location())
	if err != nil {
		return err
	}
	*t = Time{parsed}
	return nil
}

// Value implements driver.Valuer. Timestamps are stored normalized to
// UTC so that range comparisons behave the same on every backend.
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time.UTC(), nil
}

// Scan implements sql.Scanner.
func (t *Time) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Time{}
		return nil
	case time.Time:
		*t = Time{v}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Time", src)
	}
}

func (t *Time) scanString(s string) error {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		dateLayout,
	} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Time{parsed}
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into Time", s)
}
