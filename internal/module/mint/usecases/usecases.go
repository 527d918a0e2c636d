package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stdErrors "errors"
	"fmt"
	"math/big"
	"mint-service/internal/module/mint/models/entity"
	"mint-service/internal/module/mint/models/event"
	"mint-service/internal/module/mint/models/request"
	"mint-service/internal/module/mint/models/response"
	"mint-service/internal/module/mint/repositories"
	"mint-service/internal/pkg/chain"
	"mint-service/internal/pkg/contracts"
	"mint-service/internal/pkg/errors"
	"mint-service/internal/pkg/log"
	"mint-service/internal/pkg/metrics"
	"mint-service/internal/pkg/pricing"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.elastic.co/apm"
)

const (
	MsgWalletNotConfigured = "Demo wallet not configured"
	MsgKeyInProgress       = "Request with this idempotency key is in progress"
	MsgKeyReused           = "Idempotency key reused with a different request"
)

// Options is read once at startup.
type Options struct {
	Contract          common.Address
	ABI               abi.ABI
	Pricer            *pricing.Pricer
	SubmitTimeout     time.Duration
	IdempotencyTTL    time.Duration
	SignerLockTTL     time.Duration
	ReceiptCheckDelay time.Duration
	ReceiptMaxRetry   int
	Now               func() time.Time
}

type usecase struct {
	repo    repositories.Repositories
	log     log.Logger
	publish message.Publisher
	chain   chain.Client
	opts    Options
}

type Usecase interface {
	// http
	Mint(ctx context.Context, payload *request.Mint, idempotencyKey string) (response.Mint, error)
	ShowMint(ctx context.Context, txHash string) (response.MintDetail, error)
	// message stream
	ConsumeMintQueue(ctx context.Context, payload *request.Mint, messageID string) error
	// scheduler
	CheckMintReceipt(ctx context.Context, payload *request.ReceiptCheck) error
}

// New builds the usecase. chainClient is nil when no wallet key is configured;
// every mint is then rejected before any network call.
func New(repo repositories.Repositories, log log.Logger, publish message.Publisher, chainClient chain.Client, opts Options) Usecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &usecase{
		repo:    repo,
		log:     log,
		publish: publish,
		chain:   chainClient,
		opts:    opts,
	}
}

func (u *usecase) Mint(ctx context.Context, payload *request.Mint, idempotencyKey string) (response.Mint, error) {
	if u.chain == nil {
		metrics.MintRequests.WithLabelValues(metrics.ResultNotConfigured).Inc()
		return response.Mint{}, errors.ConfigurationError(MsgWalletNotConfigured)
	}

	if idempotencyKey == "" {
		return u.submit(ctx, payload, "")
	}

	bodyHash := fingerprint(payload)
	record, acquired, err := u.repo.AcquireIdempotencyKey(ctx, idempotencyKey, bodyHash, u.processingTTL())
	if err != nil {
		return response.Mint{}, err
	}
	if !acquired {
		return u.replay(ctx, record, bodyHash)
	}

	resp, err := u.submit(ctx, payload, idempotencyKey)
	if err != nil {
		if relErr := u.repo.ReleaseIdempotencyKey(context.WithoutCancel(ctx), idempotencyKey); relErr != nil {
			u.log.Warn(ctx, "error release idempotency key", relErr)
		}
		return response.Mint{}, err
	}

	body, _ := json.Marshal(resp)
	record.State = entity.IdempotencyComplete
	record.Response = body
	if err := u.repo.CompleteIdempotencyKey(context.WithoutCancel(ctx), idempotencyKey, record, u.opts.IdempotencyTTL); err != nil {
		u.log.Warn(ctx, "error complete idempotency key", err)
	}

	return resp, nil
}

func (u *usecase) replay(ctx context.Context, record entity.IdempotencyRecord, bodyHash string) (response.Mint, error) {
	if record.BodyHash != bodyHash {
		metrics.MintRequests.WithLabelValues(metrics.ResultRejected).Inc()
		return response.Mint{}, errors.UnprocessableEntity(MsgKeyReused)
	}
	if record.State != entity.IdempotencyComplete || len(record.Response) == 0 {
		metrics.MintRequests.WithLabelValues(metrics.ResultRejected).Inc()
		return response.Mint{}, errors.Conflict(MsgKeyInProgress)
	}

	var resp response.Mint
	if err := json.Unmarshal(record.Response, &resp); err != nil {
		return response.Mint{}, errors.InternalServerError("error parse idempotent response")
	}

	u.log.Info(ctx, fmt.Sprintf("replay idempotent mint %s", resp.TxHash))
	metrics.MintRequests.WithLabelValues(metrics.ResultReplayed).Inc()
	return resp, nil
}

func (u *usecase) submit(ctx context.Context, payload *request.Mint, idempotencyKey string) (response.Mint, error) {
	span, ctx := apm.StartSpan(ctx, "MintTickets", "app")
	defer span.End()

	signer := u.chain.Signer()
	value := u.opts.Pricer.TotalWei(payload.Quantity)

	started := u.opts.Now()
	hash, err := u.sendMint(ctx, signer, payload, value)
	metrics.SubmitDuration.Observe(u.opts.Now().Sub(started).Seconds())
	if err != nil {
		metrics.MintRequests.WithLabelValues(metrics.ResultFailed).Inc()
		return response.Mint{}, err
	}

	metrics.MintRequests.WithLabelValues(metrics.ResultSuccess).Inc()
	valueF, _ := new(big.Float).SetInt(value).Float64()
	metrics.MintValueWei.Add(valueF)

	txHash := hash.Hex()
	u.log.Info(ctx, fmt.Sprintf("submitted mint %s: %d ticket(s) to %s", txHash, payload.Quantity, payload.Recipient))

	// the transaction is on its way; follow-up failures are only logged
	followCtx := context.WithoutCancel(ctx)
	mint := entity.Mint{
		ID:              uuid.New(),
		TxHash:          txHash,
		ChainID:         u.chain.ChainID(),
		ContractAddress: u.opts.Contract.Hex(),
		SignerAddress:   signer.Hex(),
		Recipient:       payload.Recipient,
		Quantity:        payload.Quantity,
		ValueWei:        value.String(),
		Status:          entity.MintStatusSubmitted,
		CreatedAt:       started,
	}
	if idempotencyKey != "" {
		mint.IdempotencyKey.String = idempotencyKey
		mint.IdempotencyKey.Valid = true
	}
	if err := u.repo.InsertMint(followCtx, mint); err != nil {
		u.log.Error(ctx, fmt.Sprintf("error record mint %s: %v", txHash, err))
	}

	u.publishEvent(followCtx, event.TopicTicketMinted, event.TicketMinted{
		TxHash:          txHash,
		ChainID:         mint.ChainID,
		ContractAddress: mint.ContractAddress,
		Recipient:       mint.Recipient,
		Quantity:        mint.Quantity,
		ValueWei:        mint.ValueWei,
		SubmittedAt:     started.UTC().Format(time.RFC3339),
	})

	if err := u.repo.ScheduleReceiptCheck(followCtx, txHash, u.opts.ReceiptCheckDelay, u.opts.ReceiptMaxRetry); err != nil {
		u.log.Error(ctx, fmt.Sprintf("error schedule receipt check %s: %v", txHash, err))
	}

	return response.Mint{
		Success:  true,
		TxHash:   txHash,
		Quantity: payload.Quantity,
		Wallet:   payload.Recipient,
	}, nil
}

// sendMint holds the signer lock only around signing and submission.
func (u *usecase) sendMint(ctx context.Context, signer common.Address, payload *request.Mint, value *big.Int) (common.Hash, error) {
	unlock, err := u.repo.LockSigner(ctx, signer.Hex(), u.opts.SignerLockTTL)
	if err != nil {
		return common.Hash{}, err
	}
	defer unlock()

	// a caller disconnect must not abort a submission in flight
	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.SubmitTimeout)
	defer cancel()

	hash, err := u.chain.WriteContract(submitCtx, chain.WriteContractParams{
		Address:      u.opts.Contract,
		ABI:          u.opts.ABI,
		FunctionName: contracts.MintFunction,
		Args:         []interface{}{payload.Recipient, payload.Quantity},
		Value:        value,
	})
	if err != nil {
		u.log.Error(ctx, fmt.Sprintf("error mint tickets: %v", err))
		return common.Hash{}, errors.TransactionError(err)
	}
	return hash, nil
}

// processingTTL bounds how long an in-flight key blocks retries if the
// process dies before completing or releasing it.
func (u *usecase) processingTTL() time.Duration {
	ttl := u.opts.SignerLockTTL + u.opts.SubmitTimeout
	if ttl <= 0 || (u.opts.IdempotencyTTL > 0 && ttl > u.opts.IdempotencyTTL) {
		return u.opts.IdempotencyTTL
	}
	return ttl
}

func (u *usecase) ShowMint(ctx context.Context, txHash string) (response.MintDetail, error) {
	mint, err := u.repo.FindMintByTxHash(ctx, txHash)
	if err != nil {
		return response.MintDetail{}, err
	}

	resp := response.MintDetail{
		TxHash:          mint.TxHash,
		ChainID:         mint.ChainID,
		ContractAddress: mint.ContractAddress,
		SignerAddress:   mint.SignerAddress,
		Recipient:       mint.Recipient,
		Quantity:        mint.Quantity,
		ValueWei:        mint.ValueWei,
		Status:          mint.Status,
		CreatedAt:       mint.CreatedAt.UTC().Format(time.RFC3339),
	}
	if mint.BlockNumber.Valid {
		bn := mint.BlockNumber.Int64
		resp.BlockNumber = &bn
	}
	return resp, nil
}

func (u *usecase) ConsumeMintQueue(ctx context.Context, payload *request.Mint, messageID string) error {
	resp, err := u.Mint(ctx, payload, "amqp:"+messageID)
	if err != nil {
		return err
	}
	u.log.Info(ctx, fmt.Sprintf("queued mint %s handled: %s", messageID, resp.TxHash))
	return nil
}

func (u *usecase) CheckMintReceipt(ctx context.Context, payload *request.ReceiptCheck) error {
	if u.chain == nil {
		return errors.ConfigurationError(MsgWalletNotConfigured)
	}

	receipt, err := u.chain.TransactionReceipt(ctx, common.HexToHash(payload.TxHash))
	if stdErrors.Is(err, chain.ErrReceiptNotFound) {
		// still pending, the scheduler retries
		return fmt.Errorf("mint %s: %w", payload.TxHash, err)
	}
	if err != nil {
		return err
	}

	status := entity.MintStatusReverted
	if receipt.Status == types.ReceiptStatusSuccessful {
		status = entity.MintStatusConfirmed
	}
	var blockNumber int64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Int64()
	}

	err = u.repo.UpdateMintStatus(ctx, payload.TxHash, status, blockNumber)
	if err != nil && errors.StatusCode(err) != http.StatusNotFound {
		return err
	}
	if err != nil {
		// the ledger insert failed after submission; settle anyway
		u.log.Warn(ctx, fmt.Sprintf("mint %s has no ledger row, settling as %s", payload.TxHash, status))
	}

	u.publishEvent(ctx, event.TopicMintSettled, event.TicketMintSettled{
		TxHash:      payload.TxHash,
		Status:      status,
		BlockNumber: blockNumber,
		GasUsed:     receipt.GasUsed,
	})
	return nil
}

func (u *usecase) publishEvent(ctx context.Context, topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		u.log.Error(ctx, fmt.Sprintf("error marshal %s event: %v", topic, err))
		return
	}
	if err := u.publish.Publish(topic, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		u.log.Error(ctx, fmt.Sprintf("error publish %s event: %v", topic, err))
	}
}

func fingerprint(payload *request.Mint) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", payload.Quantity, payload.Recipient)))
	return hex.EncodeToString(sum[:])
}
