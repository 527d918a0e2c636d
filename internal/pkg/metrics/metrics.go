package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess       = "success"
	ResultReplayed      = "replayed"
	ResultRejected      = "rejected"
	ResultNotConfigured = "not_configured"
	ResultFailed        = "failed"
)

var (
	MintRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mint_requests_total",
		Help: "Demo mint requests by outcome.",
	}, []string{"result"})

	MintValueWei = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mint_value_wei_total",
		Help: "Native value attached to submitted mint transactions, in wei.",
	})

	SubmitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mint_submit_duration_seconds",
		Help:    "Time spent signing and submitting a mint transaction.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
)

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
