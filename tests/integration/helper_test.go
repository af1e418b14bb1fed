package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/khrisnaSoluix/lending-engine/internal/adapter/http"
	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/dto"
	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/handler"
	"github.com/khrisnaSoluix/lending-engine/internal/adapter/repository/postgres"
	redisrepo "github.com/khrisnaSoluix/lending-engine/internal/adapter/repository/redis"
	"github.com/khrisnaSoluix/lending-engine/internal/engine"
	"github.com/khrisnaSoluix/lending-engine/internal/infrastructure/notifier"
	infraredis "github.com/khrisnaSoluix/lending-engine/internal/infrastructure/redis"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
	"github.com/khrisnaSoluix/lending-engine/tests/testutil"
)

type testStack struct {
	DB     *testutil.TestDB
	Redis  *redis.Client
	UC     *usecase.LendingUseCase
	Router http.Handler
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	lendingUC := usecase.NewLendingUseCase(
		engine.New(),
		postgres.NewTxManager(pool),
		postgres.NewLoanRepository(pool),
		postgres.NewParameterRepository(pool),
		postgres.NewPostingRepository(pool),
		postgres.NewBalanceRepository(pool),
		postgres.NewScheduleRepository(pool),
		postgres.NewFlagRepository(pool),
		redisrepo.NewReferenceStore(redisClient),
		notifier.NewLogNotifier(zerolog.Nop()),
		postgres.NewULIDGenerator(),
	)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		LoanHandler:     handler.NewLoanHandler(lendingUC, redisrepo.NewCache(redisClient)),
		TransferHandler: handler.NewTransferHandler(lendingUC),
		ScheduleHandler: handler.NewScheduleHandler(lendingUC),
		HealthHandler:   handler.NewHealthHandler(pool, redisClient),
	})

	return &testStack{
		DB:     testDB,
		Redis:  redisClient,
		UC:     lendingUC,
		Router: router,
	}
}

func (s *testStack) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return &out
}

func (s *testStack) openLoan(t *testing.T, principal string) *dto.LoanResponse {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/api/v1/loans", dto.OpenLoanRequest{
		Parameters: testutil.DefaultLoanParameters(principal),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("failed to open loan: status %d body %s", rr.Code, rr.Body.String())
	}

	return decodeBody[dto.LoanResponse](t, rr)
}
