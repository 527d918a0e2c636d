package pricing

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// etherDecimals is the number of wei decimals in one ether.
const etherDecimals = 18

type Pricer struct {
	unitPrice decimal.Decimal
}

// New parses the per-ticket price, expressed in ether.
func New(unitPrice string) (*Pricer, error) {
	p, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("parse ticket price %q: %w", unitPrice, err)
	}
	if p.IsNegative() {
		return nil, fmt.Errorf("ticket price must not be negative, got %s", unitPrice)
	}
	if p.Exponent() < -etherDecimals {
		return nil, fmt.Errorf("ticket price %s has more than %d decimals", unitPrice, etherDecimals)
	}
	return &Pricer{unitPrice: p}, nil
}

func (p *Pricer) UnitPrice() decimal.Decimal {
	return p.unitPrice
}

// Total returns unitPrice * quantity in ether.
func (p *Pricer) Total(quantity int64) decimal.Decimal {
	return p.unitPrice.Mul(decimal.NewFromInt(quantity))
}

// TotalWei returns unitPrice * quantity converted to wei.
func (p *Pricer) TotalWei(quantity int64) *big.Int {
	return ToWei(p.Total(quantity))
}

func ToWei(eth decimal.Decimal) *big.Int {
	return eth.Shift(etherDecimals).BigInt()
}

func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -etherDecimals)
}
