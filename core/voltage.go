package core

import (
	"strconv"
	"strings"
)

// formatVoltage implements spec §4.1's normalization exactly: prepend
// '0' to digit if its length is < 2; for decimal, prepend '0' if length
// < 2, else truncate to the first two characters if length > 2.
// Length-exactly-2 inputs pass through unchanged either way. The result
// is always "DD.dd"; idempotent on any input already in that form (P6).
func formatVoltage(digit, decimal string) (string, float64) {
	if len(digit) < 2 {
		digit = "0" + digit
	}

	switch {
	case len(decimal) < 2:
		decimal = "0" + decimal
	case len(decimal) > 2:
		decimal = decimal[:2]
	}

	s := digit + "." + decimal
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f = 0
	}
	return s, f
}

// voltageDigits splits a "DD.dd" string back into its two parts, used by
// the P6 idempotence test to feed formatVoltage. Not part of any core
// invariant.
func voltageDigits(voltage string) (digit, decimal string) {
	parts := strings.SplitN(voltage, ".", 2)
	if len(parts) != 2 {
		return voltage, "00"
	}
	return parts[0], parts[1]
}
