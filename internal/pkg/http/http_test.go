package http_test

import (
	"io"
	internalhttp "mint-service/internal/pkg/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSetupHttpEngine(t *testing.T) {
	app := internalhttp.SetupHttpEngine()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"error"`)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
