package infer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Type-membership checks. Each one is strict: the whole string must be a
// literal of the type, otherwise the answer is simply false.

func isShort(s string) bool {
	_, err := strconv.ParseInt(s, 10, 16)
	return err == nil
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 32)
	return err == nil
}

func isLong(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

var errNotFloat = errors.New("not a float literal")

// ParseFloat reads s as a float32 literal. Decimal and hexadecimal mantissas,
// exponents and a leading sign are accepted. Digit separators ('_') are not,
// and the only non-finite spellings are NaN and Infinity. Values that
// overflow float32 are rejected.
func ParseFloat(s string) (float32, error) {
	if strings.ContainsRune(s, '_') {
		return 0, errNotFloat
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		word := strings.TrimLeft(s, "+-")
		if len(s)-len(word) > 1 || (word != "NaN" && word != "Infinity") {
			return 0, errNotFloat
		}
	}
	return float32(f), nil
}

func isFloat(s string) bool {
	_, err := ParseFloat(s)
	return err == nil
}

// ParseTime parses s under layout. Fractional seconds are accepted only
// when the layout prints them; time.Parse alone reads them after any "05".
func ParseTime(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Nanosecond() != 0 && !printsFraction(layout) {
		return time.Time{}, fmt.Errorf("%q has fractional seconds not in %q", s, layout)
	}
	return t, nil
}

func printsFraction(layout string) bool {
	whole := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return whole.Format(layout) != whole.Add(time.Millisecond).Format(layout)
}

// parses reports whether s is a valid time under layout.
func parses(s, layout string) bool {
	_, err := ParseTime(layout, s)
	return err == nil
}

func allMatch(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}
