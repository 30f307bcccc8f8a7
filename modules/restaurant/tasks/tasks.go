package tasks

import (
	"context"
	"fmt"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/queue"
	"restaurant-directory/modules/restaurant/dto"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeCacheWarmUp = "restaurant:cache_warm_up"
	TypeExport      = "restaurant:export"
)

// NewCacheWarmUpTask is unique for a minute so a burst of writes collapses
// into a single warm-up.
func NewCacheWarmUpTask() *asynq.Task {
	return asynq.NewTask(TypeCacheWarmUp, nil,
		asynq.Unique(time.Minute),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
}

func NewExportTask() *asynq.Task {
	return asynq.NewTask(TypeExport, nil,
		asynq.MaxRetry(5),
		asynq.Timeout(5*time.Minute),
	)
}

// Runner is the part of the restaurant service the workers call.
type Runner interface {
	WarmUpCache(ctx context.Context) (*dto.WarmUpResponse, *errors.AppError)
	Export(ctx context.Context) (*dto.ExportResponse, *errors.AppError)
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.Handle(TypeCacheWarmUp, queue.Instrument(asynq.HandlerFunc(h.HandleCacheWarmUp)))
	mux.Handle(TypeExport, queue.Instrument(asynq.HandlerFunc(h.HandleExport)))
}

func (h *Handler) HandleCacheWarmUp(ctx context.Context, _ *asynq.Task) error {
	result, appErr := h.runner.WarmUpCache(ctx)
	if appErr != nil {
		return fmt.Errorf("warm up cache: %w", appErr)
	}
	logger.Info("Tasks:CacheWarmUp", "count", result.Count)
	return nil
}

func (h *Handler) HandleExport(ctx context.Context, _ *asynq.Task) error {
	result, appErr := h.runner.Export(ctx)
	if appErr != nil {
		if appErr.Code == errors.ErrStorageUnavailable {
			// retrying cannot help until storage is configured
			return fmt.Errorf("export: %v: %w", appErr, asynq.SkipRetry)
		}
		return fmt.Errorf("export: %w", appErr)
	}
	logger.Info("Tasks:Export", "key", result.Key, "count", result.Count)
	return nil
}
