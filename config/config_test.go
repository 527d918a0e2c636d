package config_test

import (
	"fmt"
	"mint-service/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DEMO_WALLET_PRIVATE_KEY", "")
		t.Setenv("WALLET_DEMO_WALLET_PRIVATE_KEY", "")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.HttpServer.Port)
		assert.Equal(t, "sepolia", cfg.Chain.Network)
		assert.Equal(t, "0.001", cfg.Chain.TicketPrice)
		assert.Equal(t, 24*time.Hour, cfg.Mint.IdempotencyTTL)
		assert.Greater(t, cfg.Mint.SignerLockTTL, cfg.Chain.SubmitTimeout)
		assert.Equal(t, "", cfg.Wallet.PrivateKey)
	})

	t.Run("unprefixed wallet key", func(t *testing.T) {
		t.Setenv("DEMO_WALLET_PRIVATE_KEY", "0xabc")
		t.Setenv("TICKET_CONTRACT_ADDRESS", "0x0000000000000000000000000000000000000001")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "0xabc", cfg.Wallet.PrivateKey)
		assert.Equal(t, "0x0000000000000000000000000000000000000001", cfg.Chain.TicketContractAddress)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("MINT_IDEMPOTENCY_TTL", "forever")

		_, err := config.Load()

		assert.Error(t, err)
	})
}

func TestLoadSignerLockOutlivesSubmit(t *testing.T) {
	t.Run("lock shorter than submit timeout", func(t *testing.T) {
		t.Setenv("MINT_SIGNER_LOCK_TTL", "30s")
		t.Setenv("CHAIN_SUBMIT_TIMEOUT", "60s")

		_, err := config.Load()

		assert.ErrorContains(t, err, "SIGNER_LOCK_TTL")
	})

	t.Run("lock equal to submit timeout", func(t *testing.T) {
		t.Setenv("MINT_SIGNER_LOCK_TTL", "60s")
		t.Setenv("CHAIN_SUBMIT_TIMEOUT", "60s")

		_, err := config.Load()

		assert.Error(t, err)
	})

	t.Run("lock longer than submit timeout", func(t *testing.T) {
		t.Setenv("MINT_SIGNER_LOCK_TTL", "2m")
		t.Setenv("CHAIN_SUBMIT_TIMEOUT", "60s")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, 2*time.Minute, cfg.Mint.SignerLockTTL)
	})
}

func TestWalletConfigRedacted(t *testing.T) {
	w := config.WalletConfig{PrivateKey: "deadbeef"}

	assert.NotContains(t, fmt.Sprintf("%v", w), "deadbeef")
	assert.NotContains(t, fmt.Sprintf("%+v", w), "deadbeef")
	assert.NotContains(t, fmt.Sprintf("%#v", w), "deadbeef")
	assert.NotContains(t, fmt.Sprintf("%v", config.Config{Wallet: w}), "deadbeef")
}
