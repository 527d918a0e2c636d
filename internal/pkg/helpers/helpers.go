package helpers

import (
	"mint-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// RespError writes {"error": msg} with the status carried by err.
func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	code := errors.StatusCode(err)
	msg := err.Error()
	if msg == "" {
		msg = "internal server error"
	}

	log.Ctx(ctx.UserContext()).Info("response error", zap.Int("status", code), zap.String("error", msg))

	return ctx.Status(code).JSON(ErrorResponse{Error: msg})
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	log.Ctx(ctx.UserContext()).Info(message)

	return ctx.Status(fiber.StatusOK).JSON(data)
}
