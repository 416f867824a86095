package entry

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumeric is returned when a numeric field is neither a number, text nor null.
var ErrInvalidNumeric = errors.New("numeric field must be a number, numeric text or null")

// Numeric holds a numeric trade field exactly as it was submitted: a JSON number,
// text, or nothing. Parsing happens in the statistics engine, so malformed text
// survives storage untouched.
type Numeric struct {
	raw   string
	valid bool
}

// NumericFromText wraps raw text. Blank text is treated as absent.
func NumericFromText(text string) Numeric {
	if strings.TrimSpace(text) == "" {
		return Numeric{}
	}
	return Numeric{raw: text, valid: true}
}

// NumericFromFloat wraps a float value.
func NumericFromFloat(v float64) Numeric {
	return Numeric{raw: strconv.FormatFloat(v, 'f', -1, 64), valid: true}
}

// NumericFromPtr converts a nullable database column.
func NumericFromPtr(p *string) Numeric {
	if p == nil {
		return Numeric{}
	}
	return NumericFromText(*p)
}

// Raw returns the stored text and whether the field is set.
func (n Numeric) Raw() (string, bool) {
	return n.raw, n.valid
}

// IsSet reports whether the field carries any value, valid number or not.
func (n Numeric) IsSet() bool {
	return n.valid
}

// Ptr returns the value for a nullable TEXT column.
func (n Numeric) Ptr() *string {
	if !n.valid {
		return nil
	}
	s := n.raw
	return &s
}

// MarshalJSON writes finite numbers as JSON numbers and anything else as the original text.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(n.raw), 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return json.Marshal(v)
	}
	return json.Marshal(n.raw)
}

// UnmarshalJSON accepts null, a JSON number or a JSON string.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Numeric{}
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*n = NumericFromText(text)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return err
		}
		*n = Numeric{raw: number.String(), valid: true}
		return nil
	default:
		return ErrInvalidNumeric
	}
}
