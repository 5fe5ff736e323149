package main

import (
	"storage-search-service/internal/adapters/repositories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the listings schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ldb, err := openListingDB(ctx)
		if err != nil {
			return err
		}
		defer ldb.Close()

		zap.L().Info("initializing database schema", zap.String("driver", ldb.driver))
		if err := ldb.initSchema(ctx); err != nil {
			return err
		}
		zap.L().Info("schema ready")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all listings with the contents of a listings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := seedFile
		if path == "" {
			path = cfg.Listings.Path
		}
		listings, err := repositories.ReadListingsFile(path)
		if err != nil {
			return err
		}

		ldb, err := openListingDB(ctx)
		if err != nil {
			return err
		}
		defer ldb.Close()

		if err := ldb.initSchema(ctx); err != nil {
			return err
		}
		if err := ldb.seed(ctx, listings); err != nil {
			return err
		}

		zap.L().Info("seeding complete",
			zap.String("driver", ldb.driver),
			zap.String("file", path),
			zap.Int("listings", len(listings)),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "listings file to load (default listings.path)")
	rootCmd.AddCommand(initCmd, seedCmd)
}
