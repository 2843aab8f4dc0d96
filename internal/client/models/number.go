package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeNumber accepts a JSON number, a numeric string, "" or null.
// Empty and null decode to 0. NaN and infinities are rejected.
func decodeNumber(b []byte) (float64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %q", ErrNotFinite, s)
		}
		return f, nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return 0, fmt.Errorf("not a number: %s", b)
	}
	return f, nil
}
