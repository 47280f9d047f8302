package staking

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	minimum := big.NewInt(1e15)
	for _, tc := range []struct {
		name string
		sub  TodoSubmission
		want bool
	}{
		{"at minimum", TodoSubmission{"buy milk", "0.001"}, true},
		{"above minimum", TodoSubmission{"buy milk", "1.5"}, true},
		{"leading point", TodoSubmission{"buy milk", ".5"}, true},
		{"trailing point", TodoSubmission{"buy milk", "5."}, true},
		{"lone point", TodoSubmission{"buy milk", "."}, false},
		{"below minimum", TodoSubmission{"buy milk", "0.0005"}, false},
		{"zero", TodoSubmission{"buy milk", "0"}, false},
		{"negative", TodoSubmission{"buy milk", "-1"}, false},
		{"empty stake", TodoSubmission{"buy milk", ""}, false},
		{"not a number", TodoSubmission{"buy milk", "lots"}, false},
		{"blank description", TodoSubmission{"   ", "0.001"}, false},
		{"description at limit", TodoSubmission{strings.Repeat("é", MaxDescriptionLength), "0.001"}, true},
		{"description too long", TodoSubmission{strings.Repeat("a", MaxDescriptionLength+1), "0.001"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Validate(tc.sub, minimum))
		})
	}
}

func TestValidateZeroMinimum(t *testing.T) {
	require.True(t, Validate(TodoSubmission{"x", "0.000000000000000001"}, new(big.Int)))
	require.False(t, Validate(TodoSubmission{"x", "0"}, new(big.Int)))
}

func TestCheckReportsField(t *testing.T) {
	err := TodoSubmission{"buy milk", "0.0005"}.Check(big.NewInt(1e15))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "stake", verr.Field)
	require.Contains(t, verr.Error(), "0.001")

	err = TodoSubmission{"", "0.001"}.Check(big.NewInt(1e15))
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "description", verr.Field)
}

func TestValidStake(t *testing.T) {
	require.True(t, ValidStake("0.001", big.NewInt(1e15)))
	require.False(t, ValidStake("0.0009", big.NewInt(1e15)))
	require.False(t, ValidStake("", big.NewInt(1e15)))
	require.True(t, ValidStake("2", nil))
	require.True(t, ValidStake(".001", big.NewInt(1e15)))
}
