package domain

import (
	"encoding/json"
	"time"
)

// Date is a calendar timestamp that may be missing. The zero value is the
// missing marker used for absent or unparseable source dates.
type Date struct {
	Time  time.Time
	Valid bool
}

// MissingDate is the explicit marker for an absent or unparseable date.
var MissingDate = Date{}

func NewDate(t time.Time) Date { return Date{Time: t.UTC(), Valid: true} }

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = MissingDate
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		*d = MissingDate
		return nil
	}
	*d = NewDate(t)
	return nil
}
