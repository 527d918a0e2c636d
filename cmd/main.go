package main

import (
	"context"
	"log"
	"mint-service/config"
	"mint-service/internal/module/mint/handler"
	"mint-service/internal/module/mint/models/event"
	"mint-service/internal/module/mint/repositories"
	"mint-service/internal/module/mint/usecases"
	"mint-service/internal/pkg/chain"
	"mint-service/internal/pkg/contracts"
	"mint-service/internal/pkg/database"
	"mint-service/internal/pkg/http"
	"mint-service/internal/pkg/httpclient"
	log_internal "mint-service/internal/pkg/log"
	"mint-service/internal/pkg/messagestream"
	"mint-service/internal/pkg/middleware"
	"mint-service/internal/pkg/pricing"
	"mint-service/internal/pkg/ratelimiter"
	"mint-service/internal/pkg/redis"
	"mint-service/internal/pkg/scheduler"
	"mint-service/internal/pkg/secret"
	router "mint-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, mintHandler := initService(cfg)

	for _, router := range messageRouters {
		ctx := context.Background()
		go func(router *message.Router) {
			err := router.Run(ctx)
			if err != nil {
				log.Fatal(err)
			}
		}(router)
	}

	// start scheduler
	sch := scheduler.Scheduler{Log: log_internal.GetLogger()}
	go sch.StartHandler(&cfg.Redis, cfg.Scheduler.Concurrency,
		[]string{scheduler.TypeCheckMintReceipt},
		[]func(ctx context.Context, t *asynq.Task) error{mintHandler.CheckMintReceipt},
	)
	go sch.StartMonitoring(&cfg.Redis, cfg.Scheduler.MonitoringPort)

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, *handler.MintHandler) {
	ctx := context.Background()

	// init logger
	logZap := log_internal.SetupLogger()
	log_internal.Init(logZap)
	logger := log_internal.GetLogger()
	httpLogger := log_internal.Setup()

	// init signer, absent key leaves the wallet unconfigured
	chainClient, contractAddr := initChain(ctx, cfg, logger)

	pricer, err := pricing.New(cfg.Chain.TicketPrice)
	if err != nil {
		log.Fatalf("invalid ticket price: %v", err)
	}
	ticketABI, err := contracts.TicketABI()
	if err != nil {
		log.Fatalf("invalid ticket abi: %v", err)
	}

	// init database
	db := database.GetConnection(&cfg.Database)
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	// init scheduler client
	sch := scheduler.Scheduler{Log: logger}
	taskClient := sch.InitClient(&cfg.Redis)

	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	// Init Subscriber
	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Error(ctx, "Failed to create subscriber", err)
	}

	// Init Publisher
	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Error(ctx, "Failed to create publisher", err)
	}

	mintRepo := repositories.New(db, logger, redisClient, taskClient)
	mintUsecase := usecases.New(mintRepo, logger, publisher, chainClient, usecases.Options{
		Contract:          contractAddr,
		ABI:               ticketABI,
		Pricer:            pricer,
		SubmitTimeout:     cfg.Chain.SubmitTimeout,
		IdempotencyTTL:    cfg.Mint.IdempotencyTTL,
		SignerLockTTL:     cfg.Mint.SignerLockTTL,
		ReceiptCheckDelay: cfg.Mint.ReceiptCheckDelay,
		ReceiptMaxRetry:   cfg.Mint.ReceiptMaxRetry,
	})
	middleware := middleware.Middleware{
		Log:     httpLogger,
		Limiter: ratelimiter.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL),
	}

	validator := validator.New()
	mintHandler := handler.MintHandler{
		Log:       httpLogger,
		Validator: validator,
		Usecase:   mintUsecase,
		Publish:   publisher,
	}

	var messageRouters []*message.Router

	consumeMintQueueRouter, err := messagestream.NewRouter(publisher, event.TopicPoisonedQueue, "mint_ticket_handler", event.TopicMintRequested, subscriber, mintHandler.ConsumeMintQueue)
	if err != nil {
		logger.Error(ctx, "Failed to create consume_mint_queue router", err)
	} else {
		messageRouters = append(messageRouters, consumeMintQueueRouter)
	}

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, &mintHandler, &middleware)

	return r, messageRouters, &mintHandler

}

// initChain builds the wallet client. It returns a nil client when no key is
// configured, and exits when a configured key or contract is unusable.
func initChain(ctx context.Context, cfg *config.Config, logger log_internal.Logger) (chain.Client, common.Address) {
	privateKey := cfg.Wallet.PrivateKey
	if privateKey == "" && cfg.Wallet.SecretName != "" {
		key, err := secret.LoadPrivateKey(ctx, cfg.Wallet.SecretName)
		if err != nil {
			log.Fatalf("failed to load wallet secret: %v", err)
		}
		privateKey = key
	}
	if privateKey == "" {
		logger.Warn(ctx, "DEMO_WALLET_PRIVATE_KEY is not set, demo mints are disabled")
		return nil, common.Address{}
	}

	account, err := chain.PrivateKeyToAccount(privateKey)
	if err != nil {
		log.Fatalf("invalid demo wallet key: %v", err)
	}

	network, err := contracts.LookupNetwork(cfg.Chain.Network)
	if err != nil {
		log.Fatal(err)
	}
	registry := contracts.NewRegistry()
	if err := registry.Register(network.ChainID, cfg.Chain.TicketContractAddress); err != nil {
		log.Fatal(err)
	}
	contractAddr, err := registry.ContractAddress(network.ChainID)
	if err != nil {
		log.Fatal(err)
	}

	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	walletClient, err := chain.NewWalletClient(ctx, account, network, cfg.Chain.RPCURL, httpClient)
	if err != nil {
		log.Fatalf("failed to connect %s: %v", network.Name, err)
	}

	logger.Info(ctx, "demo wallet "+account.Address.Hex()+" ready on "+network.Name)
	return walletClient, contractAddr
}
