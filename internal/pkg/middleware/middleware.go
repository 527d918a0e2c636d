package middleware

import (
	"fmt"
	"mint-service/internal/pkg/errors"
	"mint-service/internal/pkg/helpers"
	"mint-service/internal/pkg/metrics"
	"mint-service/internal/pkg/ratelimiter"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Middleware struct {
	Log     *otelzap.Logger
	Limiter *ratelimiter.MapLimiter
	Now     func() time.Time
}

// RateLimit applies a per client token bucket, keyed by the remote IP.
// Rejected clients get a Retry-After header in whole seconds.
func (m *Middleware) RateLimit(ctx *fiber.Ctx) error {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	ok, wait := m.Limiter.Allow(ctx.IP(), now())
	if !ok {
		ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(wait)))
		m.Log.Ctx(ctx.UserContext()).Warn(fmt.Sprintf("rate limit exceeded for %s", ctx.IP()))
		metrics.MintRequests.WithLabelValues(metrics.ResultRejected).Inc()
		return helpers.RespError(ctx, m.Log, errors.TooManyRequests("Too many requests"))
	}

	return ctx.Next()
}

func retryAfterSeconds(wait time.Duration) int {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
