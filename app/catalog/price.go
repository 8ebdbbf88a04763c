package catalog

import (
	"strconv"
)

// ExtractPrice converts locale-formatted price text ("66.000.000₫",
// "66,000,000 VND") to a whole VND amount by stripping every non-digit
// rune. The source currency has no fractional subunit, so the digits
// form the full amount. Returns ok=false for empty input or text
// without digits.
func ExtractPrice(text string) (int, bool) {
	digits := make([]byte, 0, len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
	}

	if len(digits) == 0 {
		return 0, false
	}

	price, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, false
	}

	return price, true
}
