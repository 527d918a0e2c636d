package repositories

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"mint-service/internal/module/mint/models/entity"
	"mint-service/internal/module/mint/models/request"
	"mint-service/internal/pkg/errors"
	"mint-service/internal/pkg/log"
	"mint-service/internal/pkg/scheduler"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "idempotency:mint:"
	signerLockPrefix  = "mint:signer:"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type repositories struct {
	db          *sqlx.DB
	log         log.Logger
	redisClient *redis.Client
	rs          *redsync.Redsync
	taskClient  TaskEnqueuer
}

type Repositories interface {
	// db
	InsertMint(ctx context.Context, mint entity.Mint) error
	UpdateMintStatus(ctx context.Context, txHash string, status string, blockNumber int64) error
	FindMintByTxHash(ctx context.Context, txHash string) (entity.Mint, error)
	// redis
	AcquireIdempotencyKey(ctx context.Context, key string, bodyHash string, ttl time.Duration) (entity.IdempotencyRecord, bool, error)
	CompleteIdempotencyKey(ctx context.Context, key string, record entity.IdempotencyRecord, ttl time.Duration) error
	ReleaseIdempotencyKey(ctx context.Context, key string) error
	LockSigner(ctx context.Context, signer string, ttl time.Duration) (func(), error)
	// scheduler
	ScheduleReceiptCheck(ctx context.Context, txHash string, delay time.Duration, maxRetry int) error
}

func New(db *sqlx.DB, log log.Logger, redisClient *redis.Client, taskClient TaskEnqueuer) Repositories {
	var rs *redsync.Redsync
	if redisClient != nil {
		rs = redsync.New(goredis.NewPool(redisClient))
	}
	return &repositories{
		db:          db,
		log:         log,
		redisClient: redisClient,
		rs:          rs,
		taskClient:  taskClient,
	}
}

// InsertMint implements Repositories.
func (r *repositories) InsertMint(ctx context.Context, mint entity.Mint) error {
	query := `
		INSERT INTO mints (id, tx_hash, chain_id, contract_address, signer_address, recipient, quantity, value_wei, status, block_number, idempotency_key, created_at)
		VALUES (:id, :tx_hash, :chain_id, :contract_address, :signer_address, :recipient, :quantity, :value_wei, :status, :block_number, :idempotency_key, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, mint)
	if err != nil {
		r.log.Error(ctx, "error insert mint", err)
		return errors.InternalServerError("error insert mint")
	}
	return nil
}

// UpdateMintStatus implements Repositories.
func (r *repositories) UpdateMintStatus(ctx context.Context, txHash string, status string, blockNumber int64) error {
	query := `UPDATE mints SET status = $1, block_number = $2, updated_at = NOW() WHERE tx_hash = $3`
	res, err := r.db.ExecContext(ctx, query, status, blockNumber, txHash)
	if err != nil {
		r.log.Error(ctx, "error update mint status", err)
		return errors.InternalServerError("error update mint status")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.InternalServerError("error update mint status")
	}
	if affected == 0 {
		return errors.NotFound("Mint not found")
	}
	return nil
}

// FindMintByTxHash implements Repositories.
func (r *repositories) FindMintByTxHash(ctx context.Context, txHash string) (entity.Mint, error) {
	query := `SELECT id, tx_hash, chain_id, contract_address, signer_address, recipient, quantity, value_wei, status, block_number, idempotency_key, created_at, updated_at FROM mints WHERE tx_hash = $1`
	var mint entity.Mint
	err := r.db.GetContext(ctx, &mint, query, txHash)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return entity.Mint{}, errors.NotFound("Mint not found")
	}
	if err != nil {
		r.log.Error(ctx, "error find mint by tx hash", err)
		return entity.Mint{}, errors.InternalServerError("error find mint by tx hash")
	}
	return mint, nil
}

// AcquireIdempotencyKey implements Repositories. It reports true when the key
// was free and is now held as PROCESSING; otherwise it returns the stored record.
func (r *repositories) AcquireIdempotencyKey(ctx context.Context, key string, bodyHash string, ttl time.Duration) (entity.IdempotencyRecord, bool, error) {
	record := entity.IdempotencyRecord{
		State:     entity.IdempotencyProcessing,
		BodyHash:  bodyHash,
		CreatedAt: time.Now().Unix(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return entity.IdempotencyRecord{}, false, errors.InternalServerError("error marshal idempotency record")
	}

	// the key may expire between SETNX and GET, so try twice
	for i := 0; i < 2; i++ {
		ok, err := r.redisClient.SetNX(ctx, idempotencyPrefix+key, string(payload), ttl).Result()
		if err != nil {
			r.log.Error(ctx, "error set idempotency key", err)
			return entity.IdempotencyRecord{}, false, errors.InternalServerError("error set idempotency key")
		}
		if ok {
			return record, true, nil
		}

		data, err := r.redisClient.Get(ctx, idempotencyPrefix+key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			r.log.Error(ctx, "error get idempotency key", err)
			return entity.IdempotencyRecord{}, false, errors.InternalServerError("error get idempotency key")
		}

		var existing entity.IdempotencyRecord
		if err := json.Unmarshal(data, &existing); err != nil {
			return entity.IdempotencyRecord{}, false, errors.InternalServerError("error parse idempotency record")
		}
		return existing, false, nil
	}

	return entity.IdempotencyRecord{}, false, errors.Conflict("Request with this idempotency key is in progress")
}

// CompleteIdempotencyKey implements Repositories.
func (r *repositories) CompleteIdempotencyKey(ctx context.Context, key string, record entity.IdempotencyRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.InternalServerError("error marshal idempotency record")
	}
	if err := r.redisClient.Set(ctx, idempotencyPrefix+key, string(payload), ttl).Err(); err != nil {
		r.log.Error(ctx, "error complete idempotency key", err)
		return errors.InternalServerError("error complete idempotency key")
	}
	return nil
}

// ReleaseIdempotencyKey implements Repositories.
func (r *repositories) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	if err := r.redisClient.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		r.log.Error(ctx, "error release idempotency key", err)
		return errors.InternalServerError("error release idempotency key")
	}
	return nil
}

// LockSigner implements Repositories. The lock is extended every ttl/3 until
// the returned func releases it, so a slow submission never outlives it.
func (r *repositories) LockSigner(ctx context.Context, signer string, ttl time.Duration) (func(), error) {
	mutex := r.rs.NewMutex(
		signerLockPrefix+strings.ToLower(signer),
		redsync.WithExpiry(ttl),
		redsync.WithTries(64),
		redsync.WithRetryDelay(250*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		r.log.Error(ctx, "error lock signer", err)
		return nil, errors.InternalServerError("error acquire signer lock")
	}

	bgCtx := context.WithoutCancel(ctx)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(ttl / 3)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if ok, err := mutex.ExtendContext(bgCtx); !ok || err != nil {
					r.log.Warn(ctx, "error extend signer lock", err)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			if ok, err := mutex.UnlockContext(bgCtx); !ok || err != nil {
				r.log.Warn(ctx, "error unlock signer", err)
			}
		})
	}, nil
}

// ScheduleReceiptCheck implements Repositories.
func (r *repositories) ScheduleReceiptCheck(ctx context.Context, txHash string, delay time.Duration, maxRetry int) error {
	payload, err := json.Marshal(request.ReceiptCheck{TxHash: txHash})
	if err != nil {
		return errors.InternalServerError("error marshal receipt check")
	}

	task := asynq.NewTask(scheduler.TypeCheckMintReceipt, payload)
	_, err = r.taskClient.EnqueueContext(ctx, task,
		asynq.ProcessIn(delay),
		asynq.MaxRetry(maxRetry),
		asynq.TaskID("receipt:"+txHash),
	)
	if err != nil && !stdErrors.Is(err, asynq.ErrTaskIDConflict) {
		r.log.Error(ctx, "error enqueue receipt check", err)
		return errors.InternalServerError("error enqueue receipt check")
	}
	return nil
}
