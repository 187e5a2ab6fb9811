package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	ErrTxNotFound     = errors.New("transaction not found")
	ErrTxPending      = errors.New("transaction still pending")
	ErrTxFailed       = errors.New("transaction reverted")
	ErrWrongRecipient = errors.New("transaction does not pay the treasury")
	ErrNotConfirmed   = errors.New("transaction not confirmed yet")
)

var dialEVMClient = ethclient.Dial

// rpcBackend is the subset of ethclient used by the verifier, split out so
// tests can inject a fake.
type rpcBackend interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// EVMClient verifies treasury deposit transactions over an EVM RPC endpoint
type EVMClient struct {
	backend          rpcBackend
	chainID          *big.Int
	treasury         common.Address
	minConfirmations uint64
}

// NewEVMClient dials the RPC endpoint and resolves the chain id
func NewEVMClient(rpcURL, treasuryAddress string, minConfirmations uint64) (*EVMClient, error) {
	if !common.IsHexAddress(treasuryAddress) {
		return nil, fmt.Errorf("invalid treasury address: %s", treasuryAddress)
	}

	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, err
	}

	return &EVMClient{
		backend:          client,
		chainID:          chainID,
		treasury:         common.HexToAddress(treasuryAddress),
		minConfirmations: minConfirmations,
	}, nil
}

// NewEVMClientWithBackend creates a client around an injected backend.
// Intended for unit tests where RPC sockets are unavailable.
func NewEVMClientWithBackend(backend rpcBackend, chainID *big.Int, treasuryAddress string, minConfirmations uint64) *EVMClient {
	if chainID == nil {
		chainID = big.NewInt(1)
	}
	return &EVMClient{
		backend:          backend,
		chainID:          chainID,
		treasury:         common.HexToAddress(treasuryAddress),
		minConfirmations: minConfirmations,
	}
}

// ChainID returns the chain ID
func (c *EVMClient) ChainID() *big.Int {
	return c.chainID
}

// VerifyDeposit checks that txHash is a mined, successful native transfer to
// the treasury with enough confirmations, and returns the sender address and
// transferred value in wei.
func (c *EVMClient) VerifyDeposit(ctx context.Context, txHash string) (string, *big.Int, error) {
	hash := common.HexToHash(txHash)

	tx, pending, err := c.backend.TransactionByHash(ctx, hash)
	if err != nil {
		return "", nil, ErrTxNotFound
	}
	if pending {
		return "", nil, ErrTxPending
	}

	if tx.To() == nil || *tx.To() != c.treasury {
		return "", nil, ErrWrongRecipient
	}
	if tx.Value().Sign() <= 0 {
		return "", nil, ErrWrongRecipient
	}

	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		return "", nil, ErrTxNotFound
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", nil, ErrTxFailed
	}

	head, err := c.backend.BlockNumber(ctx)
	if err != nil {
		return "", nil, err
	}
	mined := receipt.BlockNumber.Uint64()
	if head < mined+c.minConfirmations {
		return "", nil, ErrNotConfirmed
	}

	sender, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to recover sender: %w", err)
	}

	return NormalizeAddress(sender.Hex()), new(big.Int).Set(tx.Value()), nil
}

// IsValidAddress reports whether s is a well-formed EVM address
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress lower-cases a hex address so it can be used as a stable
// identity key.
func NormalizeAddress(s string) string {
	return strings.ToLower(common.HexToAddress(s).Hex())
}
