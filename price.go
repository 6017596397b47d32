package pagelens

import (
	"regexp"
	"strconv"
	"strings"
)

// PriceValue holds a normalized price. Amount is nil when no digit sequence
// could be parsed; Raw always preserves the original string for auditability.
type PriceValue struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency,omitempty"`
	Raw      string   `json:"raw,omitempty"`
}

// CurrencyTable maps currency symbols to ISO-like codes.
type CurrencyTable map[string]string

// DefaultCurrencyTable returns the built-in symbol-to-code mapping.
func DefaultCurrencyTable() CurrencyTable {
	return CurrencyTable{
		"$": "USD",
		"₹": "INR",
		"€": "EUR",
		"£": "GBP",
		"¥": "JPY",
		"₩": "KRW",
		"₽": "RUB",
		"₺": "TRY",
		"₫": "VND",
		"฿": "THB",
		"₴": "UAH",
	}
}

var (
	symbolPriceRe  = regexp.MustCompile(`([₹$€£¥₩₽₺₫฿₴])\s*([0-9](?:[0-9.,\s]*[0-9])?)`)
	isoPriceRe     = regexp.MustCompile(`\b([A-Z]{3})\s*([0-9](?:[0-9.,\s]*[0-9])?)|([0-9](?:[0-9.,\s]*[0-9])?)\s*([A-Z]{3})\b`)
	currencyWordRe = regexp.MustCompile(`(?i)\b(Rs\.?|INR|USD|EUR|GBP|AUD|CAD|JPY|CNY)\b`)
	numberRe       = regexp.MustCompile(`[0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]+)?`)
)

// knownISOCodes guards the bare three-letter-code match against ordinary
// uppercase words ("MRP", "NEW") being read as currencies.
var knownISOCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "INR": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "KRW": true, "RUB": true,
	"TRY": true, "VND": true, "THB": true, "UAH": true, "CHF": true,
	"SEK": true, "NOK": true, "DKK": true, "PLN": true, "BRL": true,
	"MXN": true, "SGD": true, "HKD": true, "NZD": true, "ZAR": true,
}

// ParsePrice attempts to parse a price out of a textual string. Heuristics
// run in priority order and the first match wins: currency symbol, ISO code,
// currency word ("Rs.", "USD"), then a bare number with no currency. If no
// digit sequence is found the returned Amount is nil; ParsePrice never fails.
func ParsePrice(raw string, table CurrencyTable) PriceValue {
	pv := PriceValue{Raw: raw}
	if table == nil {
		table = DefaultCurrencyTable()
	}

	t := strings.Join(strings.Fields(raw), " ")
	if t == "" {
		return pv
	}

	if m := symbolPriceRe.FindStringSubmatch(t); m != nil {
		if v, ok := normalizeNumber(m[2]); ok {
			pv.Amount = &v
			pv.Currency = table[m[1]]
			return pv
		}
	}

	if m := isoPriceRe.FindStringSubmatch(t); m != nil {
		code, num := m[1], m[2]
		if code == "" {
			code, num = m[4], m[3]
		}
		code = strings.ToUpper(code)
		if knownISOCodes[code] {
			if v, ok := normalizeNumber(num); ok {
				pv.Amount = &v
				pv.Currency = code
				return pv
			}
		}
	}

	if w := currencyWordRe.FindString(t); w != "" {
		if num := numberRe.FindString(t); num != "" {
			if v, ok := normalizeNumber(num); ok {
				code := strings.ToUpper(strings.TrimSuffix(w, "."))
				if code == "RS" {
					code = "INR"
				}
				pv.Amount = &v
				pv.Currency = code
				return pv
			}
		}
	}

	if num := numberRe.FindString(t); num != "" {
		if v, ok := normalizeNumber(num); ok {
			pv.Amount = &v
			return pv
		}
	}

	return pv
}

// normalizeNumber parses a numeric string that may use either '.' or ',' as
// thousands or decimal separators. When both are present the rightmost
// separator is the decimal point; a single separator type is read as
// thousands when every group it delimits has exactly three digits, and as
// the decimal point when the trailing group has one or two.
func normalizeNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0, false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasComma:
		s = resolveSingleSeparator(s, ",")
	case hasDot:
		s = resolveSingleSeparator(s, ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func resolveSingleSeparator(s, sep string) string {
	parts := strings.Split(s, sep)
	last := parts[len(parts)-1]
	if len(last) != 3 && len(parts) == 2 {
		// single separator with a non-triplet tail: decimal point
		return parts[0] + "." + last
	}
	thousands := true
	for _, g := range parts[1:] {
		if len(g) != 3 {
			thousands = false
			break
		}
	}
	if thousands {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], "") + "." + last
}
