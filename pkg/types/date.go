package types

import (
	"bytes"
	"fmt"
	"time"
)

// Date is a timestamp whose JSON form is the date-only "YYYY-MM-DD" string
// the intake forms submit. Full RFC 3339 timestamps are accepted too; the
// zero value round-trips as null.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return d.Time.MarshalJSON()
}
