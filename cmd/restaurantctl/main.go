// Command restaurantctl runs operator tasks against the restaurant
// directory: schema migration, seeding, cache maintenance, exports and the
// background worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"restaurant-directory/core/logger"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Error("restaurantctl", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "restaurantctl",
		Usage: "operate the restaurant directory",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply the database schema",
				Action: migrateAction,
			},
			{
				Name:  "seed",
				Usage: "create default users and load bundled restaurants into an empty table",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "skip-users", Usage: "only seed restaurants"},
				},
				Action: seedAction,
			},
			{
				Name:  "cache",
				Usage: "inspect or maintain the restaurant cache",
				Subcommands: []*cli.Command{
					{Name: "warm-up", Usage: "load every restaurant into Redis", Action: cacheWarmUpAction},
					{Name: "clear", Usage: "delete restaurant cache entries", Action: cacheClearAction},
					{Name: "stats", Usage: "print Redis statistics", Action: cacheStatsAction},
				},
			},
			{
				Name:  "db",
				Usage: "database utilities",
				Subcommands: []*cli.Command{
					{
						Name:  "monitor",
						Usage: "print table sizes and connection pool statistics",
						Flags: []cli.Flag{
							&cli.DurationFlag{Name: "interval", Usage: "repeat every interval until interrupted; 0 prints once"},
						},
						Action: dbMonitorAction,
					},
				},
			},
			{
				Name:      "check-open",
				Usage:     "check an opening-hours string, or a stored restaurant, against a day and time",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "hours", Usage: `opening hours, e.g. "Mon-Fri 11 am - 10 pm"`},
					&cli.StringFlag{Name: "id", Usage: "restaurant id to load instead of --hours"},
					&cli.StringFlag{Name: "day", Usage: "weekday name or abbreviation", Required: true},
					&cli.StringFlag{Name: "time", Usage: "24-hour HH:MM", Required: true},
				},
				Action: checkOpenAction,
			},
			{
				Name:  "export",
				Usage: "write a directory snapshot to object storage",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "async", Usage: "enqueue the export for the worker"},
				},
				Action: exportAction,
			},
			{
				Name:   "worker",
				Usage:  "process background tasks and run the periodic cache warm-up",
				Action: workerAction,
			},
		},
	}
}
