package staking

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ContractClient reads and writes the staking todo list contract.
type ContractClient interface {
	MinimumStake(ctx context.Context) (*big.Int, error)
	CreateTodo(opts *bind.TransactOpts, description string) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Backend is satisfied by *ethclient.Client and by the simulated backend client.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

func Dial(rawurl string, address common.Address) (*Client, error) {
	client, err := ethclient.Dial(rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(client, address)
}

func NewClient(backend Backend, address common.Address) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(StakingTodoListABI))
	if err != nil {
		return nil, fmt.Errorf("parse staking todo abi: %w", err)
	}
	return &Client{
		backend:  backend,
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

type Client struct {
	backend  Backend
	address  common.Address
	contract *bind.BoundContract
}

func (c *Client) Address() common.Address {
	return c.address
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.backend.ChainID(ctx)
}

func (c *Client) MinimumStake(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "minimumStake")
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("minimumStake: unexpected %d outputs", len(out))
	}
	stake, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("minimumStake: unexpected output type %T", out[0])
	}
	return stake, nil
}

// CreateTodo sends createTodo with opts.Value as the stake. It doesn't wait for the
// transaction to be mined.
func (c *Client) CreateTodo(opts *bind.TransactOpts, description string) (*types.Transaction, error) {
	return c.contract.Transact(opts, "createTodo", description)
}

func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.backend, tx)
}

// Probe checks the network and the code deployed at the contract address. The minimum
// stake is read only when code exists.
func (c *Client) Probe(ctx context.Context) (result ProbeResult, err error) {
	result.ChainID, err = c.ChainID(ctx)
	if err != nil {
		return result, err
	}
	code, err := c.backend.CodeAt(ctx, c.address, nil)
	if err != nil {
		return result, err
	}
	result.HasCode = len(code) > 0
	if !result.HasCode {
		return result, nil
	}
	result.MinimumStake, err = c.MinimumStake(ctx)
	return result, err
}

// IsNoCode reports whether err was caused by calling an address without a contract.
func IsNoCode(err error) bool {
	return errors.Is(err, bind.ErrNoCode)
}
