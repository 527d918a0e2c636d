package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"mint-service/internal/pkg/contracts"
	wrapErrors "mint-service/internal/pkg/errors"
	"net/http"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.elastic.co/apm"
)

var ErrReceiptNotFound = errors.New("transaction receipt not found")

// Client is the part of the chain the mint flow depends on.
type Client interface {
	ChainID() int64
	Signer() common.Address
	WriteContract(ctx context.Context, params WriteContractParams) (common.Hash, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

type WriteContractParams struct {
	Address      common.Address
	ABI          abi.ABI
	FunctionName string
	Args         []interface{}
	// Value is attached to the call, in wei.
	Value *big.Int
}

// Backend is satisfied by *ethclient.Client.
type Backend interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

type WalletClient struct {
	account *Account
	network contracts.Network
	chainID *big.Int
	backend Backend
}

var _ Client = (*WalletClient)(nil)

// NewWalletClient dials rpcURL over httpClient and checks that the endpoint
// serves the expected network.
func NewWalletClient(ctx context.Context, account *Account, network contracts.Network, rpcURL string, httpClient *http.Client) (*WalletClient, error) {
	rpcClient, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeDialChain, "dial "+network.Name, err)
	}
	client := ethclient.NewClient(rpcClient)

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeChainID, "get chain id", err)
	}
	if chainID.Int64() != network.ChainID {
		client.Close()
		return nil, fmt.Errorf("rpc endpoint serves chain %s, expected %s (%d)", chainID, network.Name, network.ChainID)
	}

	return NewWalletClientWithBackend(account, network, client), nil
}

func NewWalletClientWithBackend(account *Account, network contracts.Network, backend Backend) *WalletClient {
	return &WalletClient{
		account: account,
		network: network,
		chainID: big.NewInt(network.ChainID),
		backend: backend,
	}
}

func (c *WalletClient) ChainID() int64 {
	return c.network.ChainID
}

func (c *WalletClient) Signer() common.Address {
	return c.account.Address
}

// WriteContract signs and submits a call to a state-changing contract function.
// It returns as soon as the transaction is accepted by the node.
func (c *WalletClient) WriteContract(ctx context.Context, params WriteContractParams) (common.Hash, error) {
	span, ctx := apm.StartSpan(ctx, "WriteContract "+params.FunctionName, "external.ethereum")
	defer span.End()

	method, ok := params.ABI.Methods[params.FunctionName]
	if !ok {
		return common.Hash{}, wrapErrors.WrapWithCode(wrapErrors.CodeUnknownMethod, "write "+params.FunctionName,
			fmt.Errorf("function %q not found on contract ABI", params.FunctionName))
	}

	args, err := coerceArgs(method, params.Args)
	if err != nil {
		return common.Hash{}, wrapErrors.WrapWithCode(wrapErrors.CodeInvalidArgs, "encode "+params.FunctionName, err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.account.key, c.chainID)
	if err != nil {
		return common.Hash{}, wrapErrors.WrapWithCode(wrapErrors.CodeSigner, "new transactor", err)
	}
	opts.Context = ctx
	opts.Value = params.Value

	contract := bind.NewBoundContract(params.Address, params.ABI, c.backend, c.backend, c.backend)
	tx, err := contract.Transact(opts, params.FunctionName, args...)
	if err != nil {
		return common.Hash{}, wrapErrors.WrapWithCode(wrapErrors.CodeSendTx, "send "+params.FunctionName, err)
	}

	return tx.Hash(), nil
}

func (c *WalletClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	span, ctx := apm.StartSpan(ctx, "TransactionReceipt", "external.ethereum")
	defer span.End()

	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeReceipt, "receipt "+hash.Hex(), err)
	}
	return receipt, nil
}
