package messagestream

import (
	"fmt"
	"mint-service/config"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type Amqp struct {
	config amqp.Config
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) *Amqp {
	uri := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
	return &Amqp{
		config: amqp.NewDurableQueueConfig(uri),
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *Amqp) NewPublisher() (message.Publisher, error) {
	return amqp.NewPublisher(a.config, a.logger)
}

func (a *Amqp) NewSubscriber() (message.Subscriber, error) {
	return amqp.NewSubscriber(a.config, a.logger)
}

// NewRouter consumes topic with handlerFunc. Messages that still fail after
// retries are forwarded to poisonTopic.
func NewRouter(publisher message.Publisher, poisonTopic string, handlerName string, topic string, subscriber message.Subscriber, handlerFunc message.NoPublishHandlerFunc) (*message.Router, error) {
	logger := watermill.NewStdLogger(false, false)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(publisher, poisonTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		poisonQueue,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			Logger:          logger,
		}.Middleware,
		middleware.Recoverer,
	)

	router.AddNoPublisherHandler(handlerName, topic, subscriber, handlerFunc)

	return router, nil
}
