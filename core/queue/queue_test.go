package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
)

func TestInstrumentPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		result  error
		wantErr error
	}{
		{"success", nil, nil},
		{"failure", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := Instrument(asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
				calls++
				return tt.result
			}))

			err := h.ProcessTask(context.Background(), asynq.NewTask("restaurant:test", nil))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ProcessTask() error = %v, want %v", err, tt.wantErr)
			}
			if calls != 1 {
				t.Fatalf("handler called %d times", calls)
			}
		})
	}
}

func TestNoopEnqueuer(t *testing.T) {
	var e Enqueuer = NoopEnqueuer{}
	if err := e.Enqueue(context.Background(), asynq.NewTask("restaurant:test", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt("localhost:6379", "secret", 2)
	if opt.Addr != "localhost:6379" || opt.Password != "secret" || opt.DB != 2 {
		t.Fatalf("unexpected options %+v", opt)
	}
}
