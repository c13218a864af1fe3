package cmd

import (
	"context"
	"fmt"

	"github.com/jmehdipour/customers-api/internal/config"
	"github.com/jmehdipour/customers-api/internal/logger"
	"github.com/jmehdipour/customers-api/internal/model"
	"github.com/jmehdipour/customers-api/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with the demo customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log, err := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		st, err := openStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.close()

		added, err := seedCustomers(cmd.Context(), st.repo)
		if err != nil {
			return err
		}
		log.Info("seed completed", zap.Int("added", added))
		return nil
	},
}

// seedCustomers adds every fixture customer that is not stored yet and
// returns how many were added.
func seedCustomers(ctx context.Context, repo repository.CustomersRepository) (int, error) {
	added := 0
	for _, c := range model.SeedCustomers() {
		existing, err := repo.GetByID(ctx, c.ID)
		if err != nil {
			return added, fmt.Errorf("lookup customer %q: %w", c.CompanyName, err)
		}
		if existing != nil {
			continue
		}
		if err := repo.Add(ctx, c); err != nil {
			return added, fmt.Errorf("insert customer %q: %w", c.CompanyName, err)
		}
		added++
	}
	return added, nil
}
