package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"restaurant-directory/core/server"
	"restaurant-directory/modules/auth"
	"restaurant-directory/modules/restaurant"
	"restaurant-directory/modules/restaurant/hours"
	"restaurant-directory/modules/restaurant/seed"
	"restaurant-directory/modules/restaurant/service"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// withInfra loads configuration, opens the shared clients for the duration
// of fn and closes them afterwards.
func withInfra(c *cli.Context, fn func(ctx context.Context, infra *server.Infra) error) error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}
	infra, err := server.Open(c.Context, cfg)
	if err != nil {
		return err
	}
	defer infra.Close()
	return fn(c.Context, infra)
}

func restaurantService(infra *server.Infra) *service.RestaurantService {
	return restaurant.NewService(infra.RestaurantDependencies())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateAction(c *cli.Context) error {
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		return infra.DB.Migrate(ctx)
	})
}

func seedAction(c *cli.Context) error {
	records, err := seed.Restaurants()
	if err != nil {
		return err
	}
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		if err := infra.DB.Migrate(ctx); err != nil {
			return err
		}

		users := 0
		if !c.Bool("skip-users") {
			created, appErr := auth.GetService(&infra.DB, infra.Redis).SeedUsers(ctx)
			if appErr != nil {
				return appErr
			}
			users = created
		}

		inserted, appErr := restaurantService(infra).Seed(ctx, records)
		if appErr != nil {
			return appErr
		}
		fmt.Fprintf(c.App.Writer, "seeded %d users, %d restaurants\n", users, inserted)
		return nil
	})
}

func cacheWarmUpAction(c *cli.Context) error {
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		result, appErr := restaurantService(infra).WarmUpCache(ctx)
		if appErr != nil {
			return appErr
		}
		return printJSON(c.App.Writer, result)
	})
}

func cacheClearAction(c *cli.Context) error {
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		result, appErr := restaurantService(infra).ClearCache(ctx)
		if appErr != nil {
			return appErr
		}
		return printJSON(c.App.Writer, result)
	})
}

func cacheStatsAction(c *cli.Context) error {
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		return printJSON(c.App.Writer, restaurantService(infra).CacheStats(ctx))
	})
}

type dbSnapshot struct {
	At              time.Time      `json:"at"`
	Tables          map[string]int `json:"tables"`
	OpenConnections int            `json:"open_connections"`
	InUse           int            `json:"in_use"`
	Idle            int            `json:"idle"`
	WaitCount       int64          `json:"wait_count"`
	WaitDuration    string         `json:"wait_duration"`
}

func dbMonitorAction(c *cli.Context) error {
	interval := c.Duration("interval")
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		for {
			counts, err := infra.DB.TableCounts(ctx, "restaurants", "users")
			if err != nil {
				return err
			}
			stats := infra.DB.Stats()
			snapshot := dbSnapshot{
				At:              time.Now().UTC(),
				Tables:          counts,
				OpenConnections: stats.OpenConnections,
				InUse:           stats.InUse,
				Idle:            stats.Idle,
				WaitCount:       stats.WaitCount,
				WaitDuration:    stats.WaitDuration.String(),
			}
			if err := printJSON(c.App.Writer, snapshot); err != nil {
				return err
			}
			if interval <= 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(interval):
			}
		}
	})
}

func checkOpenAction(c *cli.Context) error {
	day, clock := c.String("day"), c.String("time")

	if raw := c.String("hours"); raw != "" {
		open, err := hours.IsOpenAt(raw, day, clock)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, map[string]any{
			"opening_hours": raw,
			"schedules":     hours.Parse(raw),
			"day":           day,
			"time":          clock,
			"is_open":       open,
		})
	}

	id, err := uuid.Parse(c.String("id"))
	if err != nil {
		return fmt.Errorf("either --hours or a valid --id is required: %w", err)
	}
	query, err := hours.ParseQuery("", day, clock)
	if err != nil {
		return err
	}
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		result, appErr := restaurantService(infra).CheckOpen(ctx, id, query)
		if appErr != nil {
			return appErr
		}
		return printJSON(c.App.Writer, result)
	})
}

func exportAction(c *cli.Context) error {
	return withInfra(c, func(ctx context.Context, infra *server.Infra) error {
		svc := restaurantService(infra)
		if c.Bool("async") {
			result, appErr := svc.ScheduleExport(ctx)
			if appErr != nil {
				return appErr
			}
			return printJSON(c.App.Writer, result)
		}
		result, appErr := svc.Export(ctx)
		if appErr != nil {
			return appErr
		}
		return printJSON(c.App.Writer, result)
	})
}
