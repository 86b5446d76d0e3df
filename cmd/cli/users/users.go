package users

import (
	"context"
	"fmt"

	"github.com/paulr25/bp-tracker/cmd/cli/output"
	"github.com/paulr25/bp-tracker/cmd/cli/root"
	"github.com/paulr25/bp-tracker/internal/config"
	"github.com/paulr25/bp-tracker/internal/db"
	"github.com/paulr25/bp-tracker/internal/repo"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Operator commands for registered accounts",
		Long:  "Inspect registered accounts directly in the database. Uses the DB_* environment variables.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE:  runList,
	}

	usersCmd.AddCommand(listCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// List Users (direct DB)
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	userRepo := repo.NewUserRepo(database)
	ctx := context.Background()

	users, err := userRepo.List(ctx)
	if err != nil {
		return err
	}
	total, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.ID, u.Username})
	}
	output.RenderTable([]string{"ID", "Username"}, rows)
	fmt.Printf("Total users: %d\n", total)
	return nil
}
