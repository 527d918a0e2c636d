package http

import (
	"fmt"
	"log"
	"mint-service/internal/pkg/errors"
	"mint-service/internal/pkg/helpers"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.elastic.co/apm/module/apmfiber"
)

func SetupHttpEngine() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(apmfiber.Middleware())

	return app
}

// errorHandler keeps the {"error": ...} shape for errors fiber raises itself.
func errorHandler(ctx *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return ctx.Status(fe.Code).JSON(helpers.ErrorResponse{Error: fe.Message})
	}
	return ctx.Status(errors.StatusCode(err)).JSON(helpers.ErrorResponse{Error: err.Error()})
}

func StartHttpServer(app *fiber.App, port string) {
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal(err)
	}
}
