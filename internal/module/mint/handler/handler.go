package handler

import (
	"context"
	"fmt"
	"mint-service/internal/module/mint/models/event"
	"mint-service/internal/module/mint/models/request"
	"mint-service/internal/module/mint/usecases"
	"mint-service/internal/pkg/errors"
	"mint-service/internal/pkg/helpers"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	maxIdempotencyKeyLen = 255
)

type MintHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *MintHandler) DemoMint(ctx *fiber.Ctx) error {
	req, err := h.parseMint(ctx.Body())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	key := strings.TrimSpace(ctx.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("Invalid idempotency key"))
	}

	// call usecase to mint tickets
	resp, err := h.Usecase.Mint(ctx.UserContext(), req, key)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error mint tickets: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success mint tickets")
}

func (h *MintHandler) ShowMint(ctx *fiber.Ctx) error {
	txHash := ctx.Params("tx_hash")
	if txHash == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("tx hash required"))
	}

	// call usecase to show mint
	resp, err := h.Usecase.ShowMint(ctx.UserContext(), txHash)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show mint: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show mint")
}

// ConsumeMintQueue handles mint requests coming from other services. Messages
// that can never succeed go straight to the poison queue; usecase failures are
// returned so the router retries them.
func (h *MintHandler) ConsumeMintQueue(msg *message.Message) error {
	ctx := msg.Context()

	req, err := h.parseMint(msg.Payload)
	if err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error parse message %s: %v", msg.UUID, err))
		h.poison(ctx, msg, err)
		return nil
	}

	// call usecase to consume mint queue
	if err := h.Usecase.ConsumeMintQueue(ctx, req, msg.UUID); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error consume mint queue: %v", err))
		return err
	}

	return nil
}

func (h *MintHandler) CheckMintReceipt(ctx context.Context, t *asynq.Task) error {
	var req request.ReceiptCheck
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	// call usecase to check mint receipt
	if err := h.Usecase.CheckMintReceipt(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Warn(fmt.Sprintf("error check mint receipt: %v", err))
		return err
	}

	return nil
}

func (h *MintHandler) parseMint(body []byte) (*request.Mint, error) {
	req, err := request.ParseMint(body)
	if err != nil {
		return nil, err
	}
	if err := h.Validator.Struct(req); err != nil {
		return nil, request.ValidationMessage(err)
	}
	return req, nil
}

func (h *MintHandler) poison(ctx context.Context, msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: event.TopicMintRequested,
		ErrorMsg:    cause.Error(),
		Payload:     string(msg.Payload),
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)
	if err := h.Publish.Publish(event.TopicPoisonedQueue, message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}
