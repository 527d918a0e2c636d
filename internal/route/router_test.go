package router_test

import (
	"io"
	"mint-service/internal/module/mint/handler"
	"mint-service/internal/module/mint/mocks"
	"mint-service/internal/module/mint/models/response"
	"mint-service/internal/pkg/http"
	log_internal "mint-service/internal/pkg/log"
	"mint-service/internal/pkg/middleware"
	"mint-service/internal/pkg/ratelimiter"
	router "mint-service/internal/route"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newApp(ucm *mocks.Usecase, burst int) *fiber.App {
	logger := log_internal.Setup()
	h := &handler.MintHandler{
		Log:       logger,
		Validator: validator.New(),
		Usecase:   ucm,
		Publish:   mocks.NewPublisher(),
	}
	m := &middleware.Middleware{
		Log:     logger,
		Limiter: ratelimiter.New(0.001, burst, time.Minute),
	}
	return router.Initialize(http.SetupHttpEngine(), h, m)
}

func TestHealth(t *testing.T) {
	app := newApp(&mocks.Usecase{}, 1)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))
}

func TestMetrics(t *testing.T) {
	app := newApp(&mocks.Usecase{}, 1)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDemoMintRateLimited(t *testing.T) {
	ucm := &mocks.Usecase{}
	ucm.On("Mint", mock.Anything, mock.Anything, "").Return(response.Mint{Success: true, TxHash: "0x1", Quantity: 1, Wallet: "0xabc"}, nil).Once()
	app := newApp(ucm, 1)

	send := func() int {
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/demo-mint", strings.NewReader(`{"quantity":1,"recipient":"0xabc"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, send())
	assert.Equal(t, fiber.StatusTooManyRequests, send())
	ucm.AssertExpectations(t)
}
