package testtools

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// NetworkID of the simulated backend, required for the signer.
	NetworkID      int64  = 1337
	ETHTransferGas uint64 = 21000
)

// Client is the subset of the chain client used by the faucet.
type Client interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// NewFaucet creates faucet object, requires client and private key.
func NewFaucet(client Client, pkey *ecdsa.PrivateKey, chainID *big.Int) Faucet {
	return Faucet{
		pkey:    pkey,
		address: crypto.PubkeyToAddress(pkey.PublicKey),
		signer:  types.LatestSignerForChainID(chainID),
		client:  client,
	}
}

// Faucet provides API to request funds.
type Faucet struct {
	pkey    *ecdsa.PrivateKey
	address common.Address
	signer  types.Signer
	client  Client
}

// Request funds for an address. The transaction is sent but not mined; the caller
// commits a block on the simulated backend.
func (f Faucet) Request(ctx context.Context, to common.Address, funds *big.Int) (*types.Transaction, error) {
	nonce, err := f.client.PendingNonceAt(ctx, f.address)
	if err != nil {
		return nil, err
	}
	price, err := f.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	tx := types.NewTransaction(nonce, to, funds, ETHTransferGas, price, nil)
	tx, err = types.SignTx(tx, f.signer, f.pkey)
	if err != nil {
		return nil, err
	}
	return tx, f.client.SendTransaction(ctx, tx)
}
