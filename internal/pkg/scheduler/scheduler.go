package scheduler

import (
	"context"
	"fmt"
	"mint-service/config"
	"mint-service/internal/pkg/log"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
)

const (
	TypeCheckMintReceipt = "check_mint_receipt"
)

type Scheduler struct {
	Log log.Logger
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// StartMonitoring serves the asynqmon UI under /monitoring. It blocks.
func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig, port string) {
	ctx := context.Background()
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: redisOpt(cfg),
	})

	mux := http.NewServeMux()
	mux.Handle(h.RootPath()+"/", h)

	s.Log.Info(ctx, fmt.Sprintf("scheduler monitoring listening on :%s%s", port, h.RootPath()))
	err := http.ListenAndServe(":"+port, mux)
	s.Log.Error(ctx, "error start monitoring scheduler", err)
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// StartHandler runs the task server until it fails. It blocks.
func (s *Scheduler) StartHandler(cfg *config.RedisConfig, concurrency int, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) {
	ctx := context.Background()
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	if err := srv.Run(s.NewServeMux(taskTypes, handlerFunc)); err != nil {
		s.Log.Error(ctx, "error start handler scheduler", err)
	}
}

func (s *Scheduler) NewServeMux(taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	for i, taskType := range taskTypes {
		mux = s.registerHandlers(mux, taskType, handlerFunc[i])
	}
	return mux
}

func (s *Scheduler) registerHandlers(mux *asynq.ServeMux, typeTask string, handlerFunc func(ctx context.Context, t *asynq.Task) error) *asynq.ServeMux {
	// mux maps a type to a handler
	mux.HandleFunc(typeTask, handlerFunc)
	return mux
}
