package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseOptionalNumber converts raw form input into a number. Blank, malformed
// and non-finite input all read as 0; thousands separators are ignored.
func ParseOptionalNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Number is a float64 that decodes from a JSON number, a numeric string, an
// empty string or null. Anything that is not a number decodes as 0.
type Number float64

// Float returns the value as a float64.
func (n Number) Float() float64 {
	return float64(n)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseOptionalNumber(s))
		return nil
	}
	*n = Number(ParseOptionalNumber(string(data)))
	return nil
}

// OptionalNumber is a Number that remembers whether a value was supplied.
// Blank strings and null count as not supplied.
type OptionalNumber struct {
	Value float64
	Set   bool
}

// Ptr returns the value, or nil when none was supplied.
func (o OptionalNumber) Ptr() *float64 {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*o = OptionalNumber{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil || strings.TrimSpace(s) == "" {
			return nil
		}
		*o = OptionalNumber{Value: ParseOptionalNumber(s), Set: true}
		return nil
	}
	*o = OptionalNumber{Value: ParseOptionalNumber(string(data)), Set: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OptionalNumber) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// DateLayout is the wire and display layout of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date at UTC midnight.
type Date struct {
	time.Time
}

// NewDate returns the date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current UTC date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD or RFC 3339 string. Blank or malformed input
// yields the zero Date.
func ParseDate(raw string) Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t)
	}
	return Date{}
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// AddMonths returns the date n calendar months later. Day overflow rolls
// into the following month, so Jan 31 + 1 month is Mar 3 (Mar 2 in leap years).
func (d Date) AddMonths(n int) Date {
	return Date{d.Time.AddDate(0, n, 0)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// String formats the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(s)
	return nil
}
