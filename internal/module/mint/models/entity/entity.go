package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	MintStatusSubmitted = "submitted"
	MintStatusConfirmed = "confirmed"
	MintStatusReverted  = "reverted"
)

type Mint struct {
	ID              uuid.UUID      `db:"id"`
	TxHash          string         `db:"tx_hash"`
	ChainID         int64          `db:"chain_id"`
	ContractAddress string         `db:"contract_address"`
	SignerAddress   string         `db:"signer_address"`
	Recipient       string         `db:"recipient"`
	Quantity        int64          `db:"quantity"`
	ValueWei        string         `db:"value_wei"`
	Status          string         `db:"status"`
	BlockNumber     sql.NullInt64  `db:"block_number"`
	IdempotencyKey  sql.NullString `db:"idempotency_key"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       sql.NullTime   `db:"updated_at"`
}

type IdempotencyState string

const (
	IdempotencyProcessing IdempotencyState = "PROCESSING"
	IdempotencyComplete   IdempotencyState = "COMPLETE"
)

// IdempotencyRecord is stored in redis under the caller supplied key.
type IdempotencyRecord struct {
	State     IdempotencyState `json:"state"`
	BodyHash  string           `json:"body_hash"`
	Response  []byte           `json:"response,omitempty"`
	CreatedAt int64            `json:"created_at"`
}
