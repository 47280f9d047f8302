package staking

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"cosmossdk.io/math"
)

// etherDecimals matches the precision of math.LegacyDec, so the underlying
// integer of a LegacyDec is an amount in wei.
const etherDecimals = 18

// ParseEther converts a decimal string in ether units to wei.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == "-." {
		return nil, errors.New("empty amount")
	}
	dec, err := math.LegacyNewDecFromStr(normalizeDecimal(s))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return dec.BigInt(), nil
}

// FormatEther renders wei in ether units, keeping at least one fractional digit.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	out := math.LegacyNewDecFromBigIntWithPrec(wei, etherDecimals).String()
	out = strings.TrimRight(out, "0")
	if strings.HasSuffix(out, ".") {
		out += "0"
	}
	return out
}

// normalizeDecimal accepts the ".5" and "5." forms a decimal keypad produces.
func normalizeDecimal(s string) string {
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	}
	return strings.TrimSuffix(s, ".")
}
