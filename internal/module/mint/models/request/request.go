package request

import (
	"bytes"
	stdErrors "errors"
	"mint-service/internal/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const (
	MsgInvalidBody       = "Invalid request body"
	MsgInvalidQuantity   = "Invalid quantity"
	MsgRecipientRequired = "Recipient address required"
)

// Mint is the validated input of a demo mint.
type Mint struct {
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Recipient string `json:"recipient" validate:"required"`
}

type ReceiptCheck struct {
	TxHash string `json:"tx_hash" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type mintBody struct {
	Quantity  json.RawMessage `json:"quantity"`
	Recipient json.RawMessage `json:"recipient"`
}

// ParseMint decodes a raw body into Mint. A field with the wrong JSON type is
// left at its zero value so validation rejects it in field order.
func ParseMint(body []byte) (*Mint, error) {
	var raw mintBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.ValidationError(MsgInvalidBody)
	}

	return &Mint{
		Quantity:  parseQuantity(raw.Quantity),
		Recipient: parseRecipient(raw.Recipient),
	}, nil
}

func parseQuantity(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0
	}
	// JSON has one number type, so 1.0 and 3e0 are whole quantities
	d, err := decimal.NewFromString(n.String())
	if err != nil || !d.IsInteger() {
		return 0
	}
	q := d.BigInt()
	if !q.IsInt64() {
		return 0
	}
	return q.Int64()
}

func parseRecipient(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// ValidationMessage maps a validator failure on Mint to the caller facing
// message. Quantity is reported before recipient.
func ValidationMessage(err error) error {
	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) {
		return errors.ValidationError(MsgInvalidBody)
	}

	msg := ""
	for _, fe := range verrs {
		switch fe.Field() {
		case "Quantity":
			return errors.ValidationError(MsgInvalidQuantity)
		case "Recipient":
			msg = MsgRecipientRequired
		}
	}
	if msg == "" {
		msg = MsgInvalidBody
	}
	return errors.ValidationError(msg)
}
