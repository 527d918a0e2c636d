package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const MintFunction = "mint"

// TicketNFTABI covers the parts of the ticket contract this service calls or reads.
const TicketNFTABI = `[
	{
		"type": "function",
		"name": "mint",
		"stateMutability": "payable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "quantity", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "TICKET_PRICE",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "event",
		"name": "Transfer",
		"anonymous": false,
		"inputs": [
			{"name": "from", "type": "address", "indexed": true},
			{"name": "to", "type": "address", "indexed": true},
			{"name": "tokenId", "type": "uint256", "indexed": true}
		]
	}
]`

type Network struct {
	Name    string
	ChainID int64
}

var networks = map[string]Network{
	"mainnet": {Name: "mainnet", ChainID: 1},
	"sepolia": {Name: "sepolia", ChainID: 11155111},
	"holesky": {Name: "holesky", ChainID: 17000},
}

func LookupNetwork(name string) (Network, error) {
	n, ok := networks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
	return n, nil
}

func TicketABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(TicketNFTABI))
}

// Registry maps a chain id to the deployed ticket contract on that chain.
type Registry struct {
	addresses map[int64]common.Address
}

func NewRegistry() *Registry {
	return &Registry{addresses: make(map[int64]common.Address)}
}

func (r *Registry) Register(chainID int64, address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid ticket contract address %q for chain %d", address, chainID)
	}
	r.addresses[chainID] = common.HexToAddress(address)
	return nil
}

func (r *Registry) ContractAddress(chainID int64) (common.Address, error) {
	addr, ok := r.addresses[chainID]
	if !ok {
		return common.Address{}, fmt.Errorf("no ticket contract deployed on chain %d", chainID)
	}
	return addr, nil
}
