package store

import (
	"database/sql"
	"encoding/json"
)

// NullString wraps sql.NullString so optional columns marshal as the plain
// value or JSON null instead of the {String, Valid} pair.
type NullString struct {
	Value string
	Valid bool
}

func (ns NullString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

func (ns *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}
	ns.Valid = true
	return json.Unmarshal(data, &ns.Value)
}

// Scan implements sql.Scanner so pgx can read nullable columns directly.
func (ns *NullString) Scan(src any) error {
	var s sql.NullString
	if err := s.Scan(src); err != nil {
		return err
	}
	ns.Value, ns.Valid = s.String, s.Valid
	return nil
}

// Ptr returns the value as *string for use as a query argument (nil maps to NULL).
func (ns NullString) Ptr() *string {
	if !ns.Valid {
		return nil
	}
	v := ns.Value
	return &v
}

func NewNullString(s string) NullString {
	return NullString{Value: s, Valid: s != ""}
}
