package staking

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// NewFlow creates a flow without a session. Until a session is set the minimum stake
// is DefaultMinimumStake.
func NewFlow(client ContractClient) *Flow {
	return &Flow{
		client:   client,
		logger:   zerolog.Nop(),
		symbol:   DefaultSymbol,
		fallback: new(big.Int).Set(DefaultMinimumStake),
		minimum:  new(big.Int).Set(DefaultMinimumStake),
		stake:    FormatEther(DefaultMinimumStake),
	}
}

// Flow reads the minimum stake, validates user input and submits createTodo.
// One submission may be in flight at a time.
type Flow struct {
	client    ContractClient
	logger    zerolog.Logger
	metrics   *Metrics
	symbol    string
	fallback  *big.Int
	waitMined bool
	onCreated func(Outcome)

	reads singleflight.Group

	mu          sync.Mutex
	session     WalletSession
	epoch       uint64
	minimum     *big.Int
	fetched     bool
	description string
	stake       string
	loading     bool
	last        Outcome
}

func (f *Flow) WithLogger(logger zerolog.Logger) *Flow {
	f.logger = logger.With().Str("component", "stake_flow").Logger()
	return f
}

func (f *Flow) WithMetrics(m *Metrics) *Flow {
	f.metrics = m
	return f
}

// WithSymbol sets the currency symbol used in messages.
func (f *Flow) WithSymbol(symbol string) *Flow {
	f.symbol = symbol
	return f
}

// WithFallback replaces the minimum stake used when the contract can't be read.
func (f *Flow) WithFallback(wei *big.Int) *Flow {
	f.fallback = new(big.Int).Set(wei)
	f.minimum = new(big.Int).Set(wei)
	f.stake = FormatEther(wei)
	return f
}

// WithWaitMined makes Submit wait for the receipt before reporting success.
func (f *Flow) WithWaitMined(wait bool) *Flow {
	f.waitMined = wait
	return f
}

// OnTodoCreated registers a callback invoked once per successful submission.
func (f *Flow) OnTodoCreated(fn func(Outcome)) *Flow {
	f.onCreated = fn
	return f
}

// State returns a snapshot of the flow.
func (f *Flow) State() StakeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return StakeState{
		MinimumStake: copyInt(f.minimum),
		Description:  f.description,
		StakeAmount:  f.stake,
		Loading:      f.loading,
		Last:         f.last,
	}
}

// SetSession handles a connection state change. A new session drops the cached
// minimum stake; a connected one fetches it again.
func (f *Flow) SetSession(ctx context.Context, session WalletSession) {
	f.mu.Lock()
	f.session = session
	f.epoch++
	f.fetched = false
	f.minimum = copyInt(f.fallback)
	f.stake = FormatEther(f.fallback)
	f.mu.Unlock()

	if connected(session) {
		f.FetchMinimumStake(ctx, session)
	}
}

// FetchMinimumStake returns the contract minimum stake in wei. It never fails: a
// disconnected session or a failed read yields the fallback. The value is read once
// per session set with SetSession; concurrent callers share the in-flight read.
func (f *Flow) FetchMinimumStake(ctx context.Context, session WalletSession) *big.Int {
	if !connected(session) {
		f.metrics.fetch(fetchFallback)
		return copyInt(f.fallback)
	}

	f.mu.Lock()
	if cached, ok := f.cachedLocked(session); ok {
		f.mu.Unlock()
		f.metrics.fetch(fetchCached)
		return cached
	}
	epoch := f.epoch
	f.mu.Unlock()

	key := strconv.FormatUint(epoch, 10) + "/" + session.Address().Hex()
	v, _, _ := f.reads.Do(key, func() (interface{}, error) {
		// a read for this session may have finished since the check above
		f.mu.Lock()
		if cached, ok := f.cachedLocked(session); ok {
			f.mu.Unlock()
			f.metrics.fetch(fetchCached)
			return cached, nil
		}
		f.mu.Unlock()

		stake := f.readMinimumStake(ctx, session)

		f.mu.Lock()
		if f.session == session && f.epoch == epoch {
			f.minimum = copyInt(stake)
			f.stake = FormatEther(stake)
			f.fetched = true
		}
		f.mu.Unlock()
		return stake, nil
	})
	return copyInt(v.(*big.Int))
}

func (f *Flow) cachedLocked(session WalletSession) (*big.Int, bool) {
	if f.fetched && f.session == session {
		return copyInt(f.minimum), true
	}
	return nil, false
}

func (f *Flow) readMinimumStake(ctx context.Context, session WalletSession) *big.Int {
	f.logger.Debug().Str("address", session.Address().Hex()).Msg("reading minimum stake")
	stake, err := f.client.MinimumStake(ctx)
	if err != nil {
		f.logger.Warn().Err(err).
			Str("fallback", FormatEther(f.fallback)).
			Msg("can't read minimum stake, using default")
		f.metrics.fetch(fetchFallback)
		return copyInt(f.fallback)
	}
	f.logger.Info().
		Str("wei", stake.String()).
		Str("amount", FormatEther(stake)).
		Msg("minimum stake")
	f.metrics.fetch(fetchContract)
	return stake
}

func (f *Flow) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.description = description
	f.resetLocked()
}

func (f *Flow) SetStakeAmount(amount string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stake = amount
	f.resetLocked()
}

// resetLocked returns a finished attempt to idle on the next edit.
func (f *Flow) resetLocked() {
	if f.last.State.Terminal() {
		f.last = Outcome{}
	}
}

// CanSubmit reports whether Submit would send a transaction right now.
func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading || !connected(f.session) {
		return false
	}
	return Validate(TodoSubmission{Description: f.description, StakeAmount: f.stake}, f.minimum)
}

// Submit sends createTodo with the current description and stake. It returns an error,
// without touching the network, when a submission is already pending, no wallet is
// connected or the input is invalid. Transaction failures are reported in the Outcome.
func (f *Flow) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return Outcome{}, ErrSubmissionInProgress
	}
	session := f.session
	if !connected(session) {
		f.mu.Unlock()
		return Outcome{}, ErrNotConnected
	}
	sub := TodoSubmission{Description: f.description, StakeAmount: f.stake}
	if err := sub.Check(f.minimum); err != nil {
		f.mu.Unlock()
		return Outcome{}, err
	}
	f.loading = true
	f.last = Outcome{State: StatePending}
	f.mu.Unlock()

	outcome := f.send(ctx, session, sub)

	f.mu.Lock()
	f.loading = false
	f.last = outcome
	if outcome.State == StateSucceeded {
		f.description = ""
	}
	f.mu.Unlock()

	f.metrics.submission(outcome.State)
	if outcome.State == StateSucceeded && f.onCreated != nil {
		f.onCreated(outcome)
	}
	return outcome, nil
}

func (f *Flow) send(ctx context.Context, session WalletSession, sub TodoSubmission) Outcome {
	// Check already parsed the amount.
	value, _ := ParseEther(sub.StakeAmount)

	opts, err := session.TransactOpts(ctx)
	if err != nil {
		return f.failed(err)
	}
	opts.Context = ctx
	opts.Value = value

	f.logger.Info().
		Str("from", session.Address().Hex()).
		Str("stake", FormatEther(value)).
		Msg("sending createTodo")
	tx, err := f.client.CreateTodo(opts, strings.TrimSpace(sub.Description))
	if err != nil {
		return f.failed(err)
	}
	f.logger.Info().Str("tx", tx.Hash().Hex()).Msg("transaction sent")

	if f.waitMined {
		receipt, err := f.client.WaitMined(ctx, tx)
		if err != nil {
			return f.failed(err)
		}
		if receipt.Status != types.ReceiptStatusSuccessful {
			return f.failed(fmt.Errorf("transaction reverted: %s", tx.Hash().Hex()))
		}
	}

	return Outcome{
		State:  StateSucceeded,
		TxHash: tx.Hash(),
		Staked: value,
		Message: fmt.Sprintf("Todo created successfully! Transaction hash: %s\nStaked: %s %s",
			tx.Hash().Hex(), strings.TrimSpace(sub.StakeAmount), f.symbol),
	}
}

func (f *Flow) failed(err error) Outcome {
	f.logger.Error().Err(err).Msg("transaction error")
	kind := Classify(err)
	outcome := Outcome{State: StateFailed, Err: err}
	switch {
	case errors.Is(kind, ErrInsufficientFunds):
		outcome.Message = fmt.Sprintf(
			"Insufficient funds. Please make sure you have enough %s tokens for the stake and gas fees.", f.symbol)
	case errors.Is(kind, ErrUserRejected):
		outcome.State = StateRejected
		outcome.Message = "Transaction was rejected by user."
	default:
		reason := err.Error()
		if reason == "" {
			reason = "Unknown error"
		}
		outcome.Message = "Transaction failed: " + reason
	}
	return outcome
}

func connected(s WalletSession) bool {
	return s != nil && s.IsConnected() && s.Address() != (common.Address{})
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
