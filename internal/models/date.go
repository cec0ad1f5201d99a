package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date without time of day, encoded as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate returns the Date for the given day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the date as "2006-01-02".
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// UnmarshalJSON implements custom JSON unmarshaling for Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements custom JSON marshaling for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// TimePtr returns the date as a *time.Time.
func (d Date) TimePtr() *time.Time {
	t := d.Time
	return &t
}

// NullableDate represents a date field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false
// - Field present with null: Set=true, Valid=false
// - Field present with value: Set=true, Valid=true, Value=date
//
// This is needed because Go's standard JSON unmarshaling treats both
// "field absent" and "field: null" as nil for pointer types.
type NullableDate struct {
	Value Date
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableDate.
func (nd *NullableDate) UnmarshalJSON(data []byte) error {
	nd.Set = true

	if string(data) == "null" {
		nd.Valid = false
		nd.Value = Date{}
		return nil
	}

	var d Date
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	nd.Value = d
	nd.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableDate.
func (nd NullableDate) MarshalJSON() ([]byte, error) {
	if !nd.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nd.Value)
}

// ToPtr converts NullableDate to *Date.
// Returns nil if Valid is false.
func (nd NullableDate) ToPtr() *Date {
	if !nd.Valid {
		return nil
	}
	return &nd.Value
}

// TimePtr returns the date as a *time.Time, nil if Valid is false.
func (nd NullableDate) TimePtr() *time.Time {
	if !nd.Valid {
		return nil
	}
	return nd.Value.TimePtr()
}
