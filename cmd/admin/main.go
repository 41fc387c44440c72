package main

import (
	"context"
	"database/sql"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/drivers/database"
	"medconsult-service/internal/app/drivers/logger"
	"medconsult-service/internal/app/services/core/auth"
	"medconsult-service/internal/app/services/core/doctors"
	"medconsult-service/internal/app/services/core/users"
	"medconsult-service/internal/app/services/shared/transaction"
	"medconsult-service/internal/migration"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/utils"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	rootCmd := &cobra.Command{
		Use:   "medconsult-admin",
		Short: "Operational commands for the consultation service",
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(bootstrapAdminCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Tag: %s\n", Tag)
		},
	}
}

func withPostgres(fn func(db *sql.DB) error) error {
	db := database.NewPostgresDB(config.NewDriverConfig())
	defer db.Close()
	return fn(db)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPostgres(func(db *sql.DB) error {
				count, err := migration.Up(db)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	}
	cmd.AddCommand(upCmd)

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return withPostgres(func(db *sql.DB) error {
				count, err := migration.Down(db, steps)
				if err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				fmt.Printf("Rolled back %d migration(s).\n", count)
				return nil
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back, 0 rolls back everything")
	cmd.AddCommand(downCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPostgres(func(db *sql.DB) error {
				statuses, err := migration.Status(db)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}

				fmt.Printf("%-45s %s\n", "MIGRATION", "APPLIED AT")
				for _, s := range statuses {
					appliedAt := "pending"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Printf("%-45s %s\n", s.ID, appliedAt)
				}
				return nil
			})
		},
	}
	cmd.AddCommand(statusCmd)

	return cmd
}

func bootstrapAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the first administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			request := &requests.BootstrapAdministrator{
				Email:    email,
				Phone:    phone,
				Password: password,
			}
			if name != "" {
				request.Name = &name
			}

			utils.SanitizeBootstrapAdministratorRequest(request)
			err := utils.ValidateStruct(request)
			if err != nil {
				return fmt.Errorf("invalid administrator details: %w", err)
			}

			driverConfig := config.NewDriverConfig()
			internalConfig := config.NewInternalConfig()
			log := logger.NewZapLogger(driverConfig, internalConfig)
			defer log.Sync()

			return withPostgres(func(db *sql.DB) error {
				// Login and OTP collaborators are never reached by the bootstrap flow.
				authUsecase := auth.NewAuthUsecase(
					users.NewUserPostgresRepository(db, log),
					doctors.NewDoctorPostgresRepository(db, log),
					transaction.NewTransactionManager(db, log),
					nil,
					nil,
					nil,
					log,
				)

				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()

				admin, err := authUsecase.BootstrapAdministrator(ctx, request)
				if err != nil {
					return err
				}
				fmt.Printf("Administrator %s created.\n", admin.ID)
				return nil
			})
		},
	}
	cmd.Flags().String("email", "", "Administrator email")
	cmd.Flags().String("phone", "", "Administrator phone number")
	cmd.Flags().String("password", "", "Administrator password")
	cmd.Flags().String("name", "", "Administrator display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
