package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/marketplace-api/internal/config"
	dbpkg "github.com/BruksfildServices01/marketplace-api/internal/db"
	infraRepo "github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/logger"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
	ucAuth "github.com/BruksfildServices01/marketplace-api/internal/usecase/auth"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "marketplace-admin",
		Short: "Operator commands for the marketplace API",
	}
	root.AddCommand(createAdminCmd())
	return root
}

func createAdminCmd() *cobra.Command {
	var firstname, lastname string

	cmd := &cobra.Command{
		Use:   "create-admin <username> <email> <password>",
		Short: "Create a verified admin account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(cfg.LogLevel)
			defer func() { _ = log.Sync() }()

			db := dbpkg.NewDB(cfg, log)
			register := ucAuth.NewRegister(
				infraRepo.NewUserGormRepository(db),
				mailer.New(cfg, log),
				cfg.FrontendURL,
				nil,
			)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			u, err := register.CreateAdmin(ctx, ucAuth.RegisterInput{
				Username:  args[0],
				Email:     args[1],
				Password:  args[2],
				Firstname: firstname,
				Lastname:  lastname,
			})
			if err != nil {
				log.Error("create admin failed", zap.Error(err))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstname, "firstname", "", "first name")
	cmd.Flags().StringVar(&lastname, "lastname", "", "last name")
	return cmd
}
