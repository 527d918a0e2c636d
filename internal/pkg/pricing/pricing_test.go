package pricing_test

import (
	"math/big"
	"mint-service/internal/pkg/pricing"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalWei(t *testing.T) {
	p, err := pricing.New("0.001")
	assert.NoError(t, err)

	testCases := []struct {
		name     string
		quantity int64
		expected string
	}{
		{name: "one ticket", quantity: 1, expected: "1000000000000000"},
		{name: "three tickets", quantity: 3, expected: "3000000000000000"},
		{name: "many tickets", quantity: 1000, expected: "1000000000000000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, p.TotalWei(tc.quantity).String())
		})
	}
}

func TestTotalThreeTicketsIsExact(t *testing.T) {
	p, err := pricing.New("0.001")
	assert.NoError(t, err)

	assert.Equal(t, "0.003", p.Total(3).String())
	assert.Equal(t, "0.003", pricing.FromWei(p.TotalWei(3)).String())
}

func TestNew(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		_, err := pricing.New("abc")
		assert.Error(t, err)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := pricing.New("-1")
		assert.Error(t, err)
	})

	t.Run("below one wei", func(t *testing.T) {
		_, err := pricing.New("0.0000000000000000001")
		assert.Error(t, err)
	})

	t.Run("whole ether", func(t *testing.T) {
		p, err := pricing.New("2")
		assert.NoError(t, err)
		assert.Equal(t, 0, p.TotalWei(1).Cmp(new(big.Int).Mul(big.NewInt(2), big.NewInt(1e18))))
	})
}
