package response

type Mint struct {
	Success  bool   `json:"success"`
	TxHash   string `json:"txHash"`
	Quantity int64  `json:"quantity"`
	Wallet   string `json:"wallet"`
}

type MintDetail struct {
	TxHash          string `json:"txHash"`
	ChainID         int64  `json:"chainId"`
	ContractAddress string `json:"contractAddress"`
	SignerAddress   string `json:"signerAddress"`
	Recipient       string `json:"recipient"`
	Quantity        int64  `json:"quantity"`
	ValueWei        string `json:"valueWei"`
	Status          string `json:"status"`
	BlockNumber     *int64 `json:"blockNumber,omitempty"`
	CreatedAt       string `json:"createdAt"`
}
