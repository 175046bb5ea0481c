package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Phone is a contact number as sent by the client. Numeric JSON values are kept as their literal text.
type Phone string

func (p *Phone) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Phone(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("phone must be a string or a number: %w", err)
		}
		*p = Phone(n.String())
	}

	return nil
}
