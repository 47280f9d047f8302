package staking

import (
	"math/big"
	"strings"
	"unicode/utf8"
)

// Check returns the first rule the submission breaks, or nil.
func (s TodoSubmission) Check(minimumStake *big.Int) error {
	desc := strings.TrimSpace(s.Description)
	if desc == "" {
		return &ValidationError{Field: "description", Reason: "empty"}
	}
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: "longer than 200 characters"}
	}
	stake, err := ParseEther(s.StakeAmount)
	if err != nil {
		return &ValidationError{Field: "stake", Reason: "not a decimal amount"}
	}
	if stake.Sign() <= 0 {
		return &ValidationError{Field: "stake", Reason: "must be positive"}
	}
	if minimumStake != nil && stake.Cmp(minimumStake) < 0 {
		return &ValidationError{Field: "stake", Reason: "below minimum stake " + FormatEther(minimumStake)}
	}
	return nil
}

// Validate reports whether the submission may be sent given the minimum stake in wei.
func Validate(s TodoSubmission, minimumStake *big.Int) bool {
	return s.Check(minimumStake) == nil
}

// ValidStake reports whether raw is a positive amount that covers minimumStake.
func ValidStake(raw string, minimumStake *big.Int) bool {
	stake, err := ParseEther(raw)
	if err != nil || stake.Sign() <= 0 {
		return false
	}
	return minimumStake == nil || stake.Cmp(minimumStake) >= 0
}
