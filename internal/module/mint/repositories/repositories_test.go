package repositories_test

import (
	"context"
	"database/sql"
	"mint-service/internal/module/mint/models/entity"
	"mint-service/internal/module/mint/repositories"
	"mint-service/internal/pkg/errors"
	log_internal "mint-service/internal/pkg/log"
	"mint-service/internal/pkg/scheduler"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"
)

var (
	mock    sqlxmock.Sqlmock
	dbx     *sqlx.DB
	logMock = log_internal.GetLogger()
)

const txHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

func setup() {
	dbx, mock, _ = sqlxmock.Newx()
}

type fakeEnqueuer struct {
	task *asynq.Task
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task = task
	return &asynq.TaskInfo{}, f.err
}

func TestInsertMint(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil)

	mint := entity.Mint{
		ID:        uuid.New(),
		TxHash:    txHash,
		ChainID:   11155111,
		Recipient: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		Quantity:  3,
		ValueWei:  "3000000000000000",
		Status:    entity.MintStatusSubmitted,
		CreatedAt: time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO mints").WillReturnResult(sqlxmock.NewResult(1, 1))

		err := repo.InsertMint(context.Background(), mint)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO mints").WillReturnError(sql.ErrConnDone)

		err := repo.InsertMint(context.Background(), mint)

		assert.Equal(t, errors.InternalServerError("error insert mint"), err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateMintStatus(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil)
	query := regexp.QuoteMeta(`UPDATE mints SET status = $1, block_number = $2, updated_at = NOW() WHERE tx_hash = $3`)

	testCases := []struct {
		name          string
		result        sql.Result
		expectedError error
	}{
		{name: "updated", result: sqlxmock.NewResult(0, 1), expectedError: nil},
		{name: "unknown tx", result: sqlxmock.NewResult(0, 0), expectedError: errors.NotFound("Mint not found")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock.ExpectExec(query).
				WithArgs(entity.MintStatusConfirmed, int64(42), txHash).
				WillReturnResult(tc.result)

			err := repo.UpdateMintStatus(context.Background(), txHash, entity.MintStatusConfirmed, 42)

			assert.Equal(t, tc.expectedError, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindMintByTxHash(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil)
	query := regexp.QuoteMeta(`FROM mints WHERE tx_hash = $1`)
	columns := []string{
		"id", "tx_hash", "chain_id", "contract_address", "signer_address", "recipient", "quantity",
		"value_wei", "status", "block_number", "idempotency_key", "created_at", "updated_at",
	}
	id := uuid.New()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		rows := sqlxmock.NewRows(columns).AddRow(
			id.String(), txHash, int64(11155111), "0x1111111111111111111111111111111111111111",
			"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			int64(3), "3000000000000000", entity.MintStatusSubmitted, nil, nil, createdAt, nil,
		)
		mock.ExpectQuery(query).WithArgs(txHash).WillReturnRows(rows)

		mint, err := repo.FindMintByTxHash(context.Background(), txHash)

		assert.NoError(t, err)
		assert.Equal(t, id, mint.ID)
		assert.Equal(t, int64(3), mint.Quantity)
		assert.False(t, mint.BlockNumber.Valid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(txHash).WillReturnError(sql.ErrNoRows)

		_, err := repo.FindMintByTxHash(context.Background(), txHash)

		assert.Equal(t, errors.NotFound("Mint not found"), err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(txHash).WillReturnError(sql.ErrConnDone)

		_, err := repo.FindMintByTxHash(context.Background(), txHash)

		assert.Equal(t, errors.InternalServerError("error find mint by tx hash"), err)
	})
}

func TestIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	ttl := time.Hour
	key := "idempotency:mint:abc"

	t.Run("acquired", func(t *testing.T) {
		client, rmock := redismock.NewClientMock()
		repo := repositories.New(nil, logMock, client, nil)

		rmock.Regexp().ExpectSetNX(key, `"state":"PROCESSING"`, ttl).SetVal(true)

		record, acquired, err := repo.AcquireIdempotencyKey(ctx, "abc", "hash-1", ttl)

		assert.NoError(t, err)
		assert.True(t, acquired)
		assert.Equal(t, entity.IdempotencyProcessing, record.State)
		assert.Equal(t, "hash-1", record.BodyHash)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("already completed", func(t *testing.T) {
		client, rmock := redismock.NewClientMock()
		repo := repositories.New(nil, logMock, client, nil)

		stored, _ := json.Marshal(entity.IdempotencyRecord{
			State:    entity.IdempotencyComplete,
			BodyHash: "hash-1",
			Response: []byte(`{"success":true}`),
		})
		rmock.Regexp().ExpectSetNX(key, `.*`, ttl).SetVal(false)
		rmock.ExpectGet(key).SetVal(string(stored))

		record, acquired, err := repo.AcquireIdempotencyKey(ctx, "abc", "hash-1", ttl)

		assert.NoError(t, err)
		assert.False(t, acquired)
		assert.Equal(t, entity.IdempotencyComplete, record.State)
		assert.Equal(t, []byte(`{"success":true}`), record.Response)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("release", func(t *testing.T) {
		client, rmock := redismock.NewClientMock()
		repo := repositories.New(nil, logMock, client, nil)

		rmock.ExpectDel(key).SetVal(1)

		assert.NoError(t, repo.ReleaseIdempotencyKey(ctx, "abc"))
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}

func TestScheduleReceiptCheck(t *testing.T) {
	t.Run("enqueued", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		repo := repositories.New(nil, logMock, nil, enq)

		err := repo.ScheduleReceiptCheck(context.Background(), txHash, time.Second, 3)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.TypeCheckMintReceipt, enq.task.Type())
		assert.JSONEq(t, `{"tx_hash":"`+txHash+`"}`, string(enq.task.Payload()))
	})

	t.Run("duplicate task id is not an error", func(t *testing.T) {
		repo := repositories.New(nil, logMock, nil, &fakeEnqueuer{err: asynq.ErrTaskIDConflict})

		assert.NoError(t, repo.ScheduleReceiptCheck(context.Background(), txHash, time.Second, 3))
	})

	t.Run("enqueue failure", func(t *testing.T) {
		repo := repositories.New(nil, logMock, nil, &fakeEnqueuer{err: asynq.ErrDuplicateTask})

		err := repo.ScheduleReceiptCheck(context.Background(), txHash, time.Second, 3)

		assert.Equal(t, errors.InternalServerError("error enqueue receipt check"), err)
	})
}

func TestLockSigner(t *testing.T) {
	ctx := context.Background()
	signer := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	lockKey := "mint:signer:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"

	newRepo := func(t *testing.T) (*miniredis.Miniredis, repositories.Repositories) {
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		t.Cleanup(func() { client.Close() })
		return srv, repositories.New(nil, logMock, client, nil)
	}

	t.Run("held past its ttl while the holder is busy", func(t *testing.T) {
		srv, repo := newRepo(t)
		ttl := 300 * time.Millisecond

		unlock, err := repo.LockSigner(ctx, signer, ttl)
		assert.NoError(t, err)

		// advance redis time well past the ttl while the first holder still works
		for i := 0; i < 6; i++ {
			time.Sleep(ttl / 3)
			srv.FastForward(ttl / 3)
		}
		assert.True(t, srv.Exists(lockKey))

		waitCtx, cancel := context.WithTimeout(ctx, 400*time.Millisecond)
		defer cancel()
		_, err = repo.LockSigner(waitCtx, signer, ttl)
		assert.Error(t, err)

		unlock()
		assert.False(t, srv.Exists(lockKey))
	})

	t.Run("released lock can be taken again", func(t *testing.T) {
		_, repo := newRepo(t)

		unlock, err := repo.LockSigner(ctx, signer, time.Second)
		assert.NoError(t, err)
		unlock()
		// releasing twice is harmless
		unlock()

		unlock, err = repo.LockSigner(ctx, signer, time.Second)
		assert.NoError(t, err)
		unlock()
	})
}
