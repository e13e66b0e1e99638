// path: cmd/seed.go
package cmd

import (
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var createdBy string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace species, methods, locations and monitoring data with the sample set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logData, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logData.Close()
			log := logData.Logger

			ctx := cmd.Context()
			repo, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer repo.Close(ctx)

			sum, err := seed.Load(ctx, repo, createdBy, time.Now().UTC().Truncate(time.Millisecond))
			if err != nil {
				return err
			}
			log.Info().
				Int("species", sum.Species).
				Int("methods", sum.Methods).
				Int("locations", sum.Locations).
				Int("monitoringData", sum.MonitoringData).
				Msg("sample data loaded")
			return nil
		},
	}
	cmd.Flags().StringVar(&createdBy, "created-by", seed.SystemUser, "createdBy value stamped on the seeded documents")
	return cmd
}
