// AngelaMos | 2026
// migrate.go

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/asset-management/internal/config"
	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down [steps]]",
	Short: "Apply or roll back database migrations",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	steps := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("steps must be a positive integer, got %q", args[1])
		}
		steps = n
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Log)

	db, err := core.NewDatabase(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	path := cfg.Migrations.Path

	switch direction {
	case "up":
		err = migrations.Up(db.DB.DB, path)
	case "down":
		err = migrations.Down(db.DB.DB, path, steps)
	default:
		return fmt.Errorf("unknown direction %q, want up or down", direction)
	}
	if err != nil {
		return err
	}

	version, dirty, err := migrations.Version(db.DB.DB, path)
	if err != nil {
		return err
	}
	logger.Info("migrations finished",
		"direction", direction,
		"version", version,
		"dirty", dirty,
	)
	return nil
}
