package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig    `envconfig:"HTTP_SERVER"`
	Wallet        WalletConfig        `envconfig:"WALLET"`
	Chain         ChainConfig         `envconfig:"CHAIN"`
	Database      DatabaseConfig      `envconfig:"DB"`
	Redis         RedisConfig         `envconfig:"REDIS"`
	MessageStream MessageStreamConfig `envconfig:"MESSAGE_STREAM"`
	HttpClient    HttpClientConfig    `envconfig:"HTTP_CLIENT"`
	Mint          MintConfig          `envconfig:"MINT"`
	RateLimit     RateLimitConfig     `envconfig:"RATE_LIMIT"`
	Scheduler     SchedulerConfig     `envconfig:"SCHEDULER"`
}

type HttpServerConfig struct {
	Port string `split_words:"true" default:"8080"`
}

// WalletConfig holds the demo wallet secret. It is read once at startup.
type WalletConfig struct {
	PrivateKey string `envconfig:"DEMO_WALLET_PRIVATE_KEY"`
	// SecretName is a Secret Manager resource used when PrivateKey is empty,
	// e.g. projects/<project>/secrets/<name>/versions/latest.
	SecretName string `split_words:"true"`
}

func (w WalletConfig) String() string {
	key := "<empty>"
	if w.PrivateKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("{PrivateKey:%s SecretName:%s}", key, w.SecretName)
}

func (w WalletConfig) GoString() string {
	return w.String()
}

type ChainConfig struct {
	Network               string        `split_words:"true" default:"sepolia"`
	RPCURL                string        `envconfig:"RPC_URL" default:"https://ethereum-sepolia-rpc.publicnode.com"`
	SubmitTimeout         time.Duration `envconfig:"SUBMIT_TIMEOUT" default:"60s"`
	TicketContractAddress string        `envconfig:"TICKET_CONTRACT_ADDRESS"`
	// TicketPrice is the per-ticket price in ether.
	TicketPrice string `envconfig:"TICKET_PRICE" default:"0.001"`
}

type DatabaseConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"5432"`
	User     string `split_words:"true" default:"postgres"`
	Password string `split_words:"true"`
	Name     string `split_words:"true" default:"mint"`
	SSLMode  string `split_words:"true" default:"disable"`
}

type RedisConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"5672"`
	Username string `split_words:"true" default:"guest"`
	Password string `split_words:"true" default:"guest"`
}

type HttpClientConfig struct {
	Type      string        `split_words:"true" default:"consecutive"`
	Timeout   time.Duration `split_words:"true" default:"15s"`
	Threshold int64         `split_words:"true" default:"5"`
	ErrorRate float64       `split_words:"true" default:"0.5"`
	// MinSamples only applies to the "rate" breaker.
	MinSamples int64 `split_words:"true" default:"20"`
}

type MintConfig struct {
	IdempotencyTTL    time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	// SignerLockTTL must outlive Chain.SubmitTimeout. The lock is also
	// extended while a submission runs.
	SignerLockTTL     time.Duration `envconfig:"SIGNER_LOCK_TTL" default:"90s"`
	ReceiptCheckDelay time.Duration `envconfig:"RECEIPT_CHECK_DELAY" default:"15s"`
	ReceiptMaxRetry   int           `envconfig:"RECEIPT_MAX_RETRY" default:"20"`
}

type RateLimitConfig struct {
	RPS     float64       `split_words:"true" default:"2"`
	Burst   int           `split_words:"true" default:"5"`
	IdleTTL time.Duration `split_words:"true" default:"10m"`
}

type SchedulerConfig struct {
	MonitoringPort string `split_words:"true" default:"8081"`
	Concurrency    int    `split_words:"true" default:"10"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Chain.SubmitTimeout <= 0 {
		return fmt.Errorf("CHAIN_SUBMIT_TIMEOUT must be positive, got %s", c.Chain.SubmitTimeout)
	}
	if c.Mint.SignerLockTTL <= c.Chain.SubmitTimeout {
		return fmt.Errorf("SIGNER_LOCK_TTL (%s) must be longer than CHAIN_SUBMIT_TIMEOUT (%s)",
			c.Mint.SignerLockTTL, c.Chain.SubmitTimeout)
	}
	return nil
}

func InitConfig() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
