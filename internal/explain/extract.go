package explain

import "regexp"

// Pattern families for quantity extraction, in declared order. The first
// family producing a match wins; later families are not consulted even if
// they would match more specifically.
var valuePatterns = []*regexp.Regexp{
	// Number with optional thousands separators/decimal followed by a unit:
	// "18 months", "52 transactions", "95%", "₹25,000", "5 rupees", "3 $".
	regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(months?|years?|transactions?|%|₹|rupees?|\$)`),
	// Bare percentage: "15%", "12.5%".
	regexp.MustCompile(`(\d+(?:\.\d+)?%)`),
	// Currency-prefixed amount: "₹25,000", "$ 5,000.50".
	regexp.MustCompile(`([₹$]\s*\d+(?:,\d{3})*(?:\.\d+)?)`),
}

// ExtractValue pulls the first numeric/unit quantity out of arbitrary text.
// The match is returned verbatim (original casing and spacing). Returns ""
// if no pattern family matches.
func ExtractValue(text string) string {
	for _, re := range valuePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
