package emit

import (
	"math"
	"strconv"
	"strings"
)

// renderNumber returns the shortest spelling of a numeric literal that
// evaluates to the same value. raw is the source spelling, value the
// parsed value.
func renderNumber(raw string, value float64) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return raw
	}

	candidates := []string{}

	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		candidates = append(candidates, "0x"+strings.ToLower(raw[2:]))
	}

	if dec := strconv.FormatFloat(value, 'f', -1, 64); dec != "" {
		candidates = append(candidates, shortenDecimal(dec))
	}
	if exp := strconv.FormatFloat(value, 'g', -1, 64); strings.ContainsAny(exp, "eE") {
		candidates = append(candidates, shortenExponent(exp))
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}

// shortenDecimal drops the zero before a leading fraction point and any
// trailing fraction zeros ("0.50" -> ".5").
func shortenDecimal(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
		if s == "" {
			s = "0"
		}
		if strings.HasPrefix(s, "0.") {
			s = s[1:]
		}
	}
	if neg {
		return "-" + s
	}
	return s
}

// shortenExponent strips the redundant sign and zero padding strconv puts
// into exponents ("1e+06" -> "1e6").
func shortenExponent(s string) string {
	idx := strings.IndexAny(s, "eE")
	if idx < 0 {
		return s
	}
	mant, exp := s[:idx], s[idx+1:]
	exp = strings.TrimPrefix(exp, "+")
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(exp, "-"), "0")
	if exp == "" {
		return mant
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "e" + exp
}
