package main

import (
	"context"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/queue"
	"restaurant-directory/core/server"
	"restaurant-directory/modules/restaurant/tasks"

	"github.com/hibiken/asynq"
	"github.com/urfave/cli/v2"
)

func workerAction(c *cli.Context) error {
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		cfg := infra.Config

		mux := asynq.NewServeMux()
		tasks.NewHandler(restaurantService(infra)).Register(mux)

		srv := queue.NewServer(infra.RedisOpt(), cfg.Queue.Concurrency)
		if err := srv.Start(mux); err != nil {
			return err
		}
		defer srv.Shutdown()

		if cfg.Queue.WarmUpCron != "" {
			scheduler := queue.NewScheduler(infra.RedisOpt())
			entryID, err := scheduler.Register(cfg.Queue.WarmUpCron, tasks.NewCacheWarmUpTask())
			if err != nil {
				return err
			}
			if err := scheduler.Start(); err != nil {
				return err
			}
			defer scheduler.Shutdown()
			logger.Info("Worker:Scheduler", "entry", entryID, "cron", cfg.Queue.WarmUpCron)
		}

		logger.Info("Worker:Start", "concurrency", cfg.Queue.Concurrency)
		<-ctx.Done()
		logger.Info("Worker:Shutdown")
		return nil
	})
}
