// Package record maps analyzer output and storage rows onto typed entities.
//
// List-valued fields are stored as JSON array text. Absent, NULL and empty
// columns all read back as an empty list.
package record

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List is an ordered sequence of strings persisted as JSON text.
type List []string

// Value encodes the list as canonical JSON array text.
func (l List) Value() (driver.Value, error) {
	return Encode(l)
}

// Scan decodes JSON array text; NULL and "" yield an empty list.
func (l *List) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
		*l = List{}
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("record: cannot scan %T into List", src)
	}
	out, err := Decode(text)
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// MarshalJSON never emits null.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Encode serializes a list to JSON array text; nil becomes "[]".
func Encode(l List) (string, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses JSON array text; "" and "null" yield an empty list.
func Decode(text string) (List, error) {
	if text == "" || text == "null" {
		return List{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("record: decode list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return List(out), nil
}

// OrEmpty returns l, or an empty list if l is nil.
func (l List) OrEmpty() List {
	if l == nil {
		return List{}
	}
	return l
}
