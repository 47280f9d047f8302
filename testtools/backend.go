package testtools

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
)

// MinimumStake is returned by the stub contract for every call. 0.001 ether.
var MinimumStake = big.NewInt(1e15)

// StubContractCode is runtime code that returns MinimumStake as a uint256 for any call
// and accepts any value:
//
//	PUSH7 0x038d7ea4c68000 PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN
var StubContractCode = common.FromHex("0x66038d7ea4c6800060005260206000f3")

// ContractAddress is where the stub contract is installed in genesis.
var ContractAddress = common.Address{0x70, 0xd0}

// Backend is a simulated chain with a stub staking todo contract and funded keys.
type Backend struct {
	*simulated.Backend

	FundedKeys []*ecdsa.PrivateKey
}

// NewBackend funds n fresh keys with 100 ether each.
func NewBackend(n int) (*Backend, error) {
	alloc := types.GenesisAlloc{
		ContractAddress: {Code: StubContractCode, Balance: new(big.Int)},
	}
	b := &Backend{}
	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))
	for i := 0; i < n; i++ {
		pkey, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		b.FundedKeys = append(b.FundedKeys, pkey)
		alloc[crypto.PubkeyToAddress(pkey.PublicKey)] = types.Account{Balance: funds}
	}
	b.Backend = simulated.NewBackend(alloc)
	return b, nil
}

// Faucet returns a faucet paying from the first funded key.
func (b *Backend) Faucet() Faucet {
	return NewFaucet(b.Client(), b.FundedKeys[0], big.NewInt(NetworkID))
}
