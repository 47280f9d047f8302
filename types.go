package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// MaxDescriptionLength is the longest todo description accepted, in characters.
	MaxDescriptionLength = 200

	// DefaultSymbol is the native currency of the monad testnet.
	DefaultSymbol = "MON"
)

// DefaultMinimumStake is used whenever the contract can't be read. 0.001 in ether units.
var DefaultMinimumStake = big.NewInt(1e15)

//go:generate stringer -type=State -trimprefix=State
type State uint8

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateRejected
	StateFailed
)

// Terminal is true for states that end a submission attempt.
func (s State) Terminal() bool {
	return s >= StateSucceeded
}

// TodoSubmission is built per submit action from the current user input.
type TodoSubmission struct {
	Description string
	StakeAmount string
}

// Outcome of a submission attempt. TxHash and Staked are set only for StateSucceeded,
// Err only for StateRejected and StateFailed.
type Outcome struct {
	State   State
	TxHash  common.Hash
	Staked  *big.Int
	Err     error
	Message string
}

// StakeState is a snapshot of the flow state.
type StakeState struct {
	MinimumStake *big.Int
	Description  string
	StakeAmount  string
	Loading      bool
	Last         Outcome
}

// ProbeResult describes what is deployed at the contract address.
type ProbeResult struct {
	ChainID      *big.Int
	HasCode      bool
	MinimumStake *big.Int
}
