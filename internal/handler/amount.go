package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a request amount that accepts a JSON number, a numeric string,
// an empty string or null. The last two decode to zero ("not supplied").
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*a = 0
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*a = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", raw)
	}
	*a = Amount(v)
	return nil
}

// Float64 returns the amount as a float64.
func (a Amount) Float64() float64 {
	return float64(a)
}
