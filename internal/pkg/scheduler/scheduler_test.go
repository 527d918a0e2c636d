package scheduler_test

import (
	"context"
	"mint-service/internal/pkg/log"
	"mint-service/internal/pkg/scheduler"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
)

func TestNewServeMux(t *testing.T) {
	s := &scheduler.Scheduler{Log: log.GetLogger()}
	called := false

	mux := s.NewServeMux(
		[]string{scheduler.TypeCheckMintReceipt},
		[]func(ctx context.Context, t *asynq.Task) error{
			func(ctx context.Context, t *asynq.Task) error {
				called = true
				return nil
			},
		},
	)

	err := mux.ProcessTask(context.Background(), asynq.NewTask(scheduler.TypeCheckMintReceipt, nil))

	assert.NoError(t, err)
	assert.True(t, called)

	err = mux.ProcessTask(context.Background(), asynq.NewTask("unknown", nil))
	assert.Error(t, err)
}
