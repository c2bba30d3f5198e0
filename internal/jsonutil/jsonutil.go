// Package jsonutil provides shared utilities for JSON parsing patterns:
// error handling, lenient scalar coercion, and stable encoding.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// MarshalIndent encodes v with two-space indentation, without HTML escaping,
// and with a trailing newline. This is the on-disk format for documents.
func MarshalIndent(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseInt leniently parses the leading integer of s.
// Leading whitespace and a single sign are accepted; parsing stops at the
// first non-digit. Input with no leading digits yields 0. Values outside the
// int range saturate.
func ParseInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n uint64
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n > math.MaxInt64/10 {
			n = math.MaxInt64 + 1
			continue
		}
		n = n*10 + uint64(r-'0')
	}
	if digits == 0 {
		return 0
	}
	if neg {
		if n > math.MaxInt64 {
			return math.MinInt
		}
		return -int(n)
	}
	if n > math.MaxInt64 {
		return math.MaxInt
	}
	return int(n)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// ParseBool leniently parses a boolean toggle value.
// "true", "1", "yes", "on" (any case) are true; everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
