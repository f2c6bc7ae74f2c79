// AngelaMos | 2026
// seed.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/asset-management/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo company for local development",
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := openInfra(cmd.Context())
		if err != nil {
			return err
		}
		defer in.Close()

		svc := newServices(in, in.publisher)

		seeder := &seed.Seeder{
			Employees: svc.employees,
			Payments:  svc.payments,
			Teams:     svc.teams,
			Assets:    svc.assets,
			Requests:  svc.requests,
			Logger:    in.logger,
		}

		res, err := seeder.Run(cmd.Context())
		if err != nil {
			return err
		}

		if res.Skipped {
			in.logger.Info("demo data already present", "hr", seed.DemoHREmail)
			return nil
		}

		in.logger.Info("demo data loaded",
			"hr", seed.DemoHREmail,
			"employees", res.Employees,
			"assets", res.Assets,
			"requests", res.Requests,
		)
		return nil
	},
}
