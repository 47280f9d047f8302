package staking

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// WalletSession is a connected signing account.
type WalletSession interface {
	IsConnected() bool
	Address() common.Address
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// ApproveFunc is asked before every signature. Returning false declines the transaction.
type ApproveFunc func(tx *types.Transaction) bool

// NewKeySession returns a connected session signing with key for chainID.
func NewKeySession(key *ecdsa.PrivateKey, chainID *big.Int) *KeySession {
	s := &KeySession{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: new(big.Int).Set(chainID),
	}
	s.connected.Store(true)
	return s
}

// OpenKeystore decrypts a keystore v3 file.
func OpenKeystore(path, password string, chainID *big.Int) (*KeySession, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := keystore.DecryptKey(blob, password)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", path, err)
	}
	return NewKeySession(key.PrivateKey, chainID), nil
}

type KeySession struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
	approve ApproveFunc

	connected atomic.Bool
}

func (s *KeySession) WithApproval(fn ApproveFunc) *KeySession {
	s.approve = fn
	return s
}

func (s *KeySession) Connect()    { s.connected.Store(true) }
func (s *KeySession) Disconnect() { s.connected.Store(false) }

func (s *KeySession) IsConnected() bool {
	return s.connected.Load()
}

func (s *KeySession) Address() common.Address {
	return s.address
}

func (s *KeySession) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

func (s *KeySession) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if !s.IsConnected() {
		return nil, ErrNotConnected
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	if s.approve != nil {
		sign := opts.Signer
		opts.Signer = func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if !s.approve(tx) {
				return nil, ErrUserRejected
			}
			return sign(from, tx)
		}
	}
	return opts, nil
}
