package staking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUserRejected       = errors.New("user rejected transaction")
	ErrUnknownTransaction = errors.New("transaction failed")

	// ErrSubmissionInProgress is returned by Submit while another submission is pending.
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrNotConnected         = errors.New("wallet is not connected")
)

// ValidationError blocks a submission before anything is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Classify maps a transaction error to ErrInsufficientFunds, ErrUserRejected or
// ErrUnknownTransaction. Node and wallet errors rarely carry types across the rpc
// boundary, so the message is matched when errors.Is can't decide.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, ErrUserRejected):
		return ErrUserRejected
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return ErrInsufficientFunds
	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "user denied"):
		return ErrUserRejected
	}
	return ErrUnknownTransaction
}
