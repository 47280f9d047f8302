package staking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want error
	}{
		{errors.New("insufficient funds for gas * price + value: have 0 want 1000"), ErrInsufficientFunds},
		{errors.New("Insufficient Funds for transfer"), ErrInsufficientFunds},
		{fmt.Errorf("send: %w", ErrInsufficientFunds), ErrInsufficientFunds},
		{errors.New("user rejected the request"), ErrUserRejected},
		{errors.New("MetaMask Tx Signature: User denied transaction signature."), ErrUserRejected},
		{fmt.Errorf("sign: %w", ErrUserRejected), ErrUserRejected},
		{errors.New("execution reverted"), ErrUnknownTransaction},
		{errors.New(""), ErrUnknownTransaction},
	} {
		require.Equal(t, tc.want, Classify(tc.err), tc.err.Error())
	}
	require.NoError(t, Classify(nil))
}
