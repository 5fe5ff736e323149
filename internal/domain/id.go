package domain

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// ID identifies a listing or a location. Listing files may use JSON strings
// or numbers as ids; Numeric records which, so an id is echoed back in the
// form it arrived in. The string "1" and the number 1 are different ids.
type ID struct {
	Value   string
	Numeric bool
}

func StringID(s string) ID {
	return ID{Value: s}
}

// NumberID expects s to be a JSON number literal.
func NumberID(s string) ID {
	return ID{Value: s, Numeric: true}
}

func (id ID) String() string {
	return id.Value
}

func (id ID) IsZero() bool {
	return id == (ID{})
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		if !IsJSONNumber(id.Value) {
			return nil, eris.Errorf("id %q is marked numeric but is not a number", id.Value)
		}
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return eris.Wrapf(err, "id %s", b)
		}
		*id = StringID(s)
		return nil
	}

	if !IsJSONNumber(string(b)) {
		return eris.Errorf("id %s is neither a string nor a number", b)
	}
	*id = NumberID(string(b))
	return nil
}

// IsJSONNumber reports whether s is a single JSON number literal.
func IsJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}
