package event

const (
	TopicTicketMinted  = "ticket_minted"
	TopicMintSettled   = "ticket_mint_settled"
	TopicMintRequested = "mint_ticket"
	TopicPoisonedQueue = "poisoned_queue"
)

type TicketMinted struct {
	TxHash          string `json:"tx_hash"`
	ChainID         int64  `json:"chain_id"`
	ContractAddress string `json:"contract_address"`
	Recipient       string `json:"recipient"`
	Quantity        int64  `json:"quantity"`
	ValueWei        string `json:"value_wei"`
	SubmittedAt     string `json:"submitted_at"`
}

type TicketMintSettled struct {
	TxHash      string `json:"tx_hash"`
	Status      string `json:"status"`
	BlockNumber int64  `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}
