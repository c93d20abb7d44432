// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/bulletin/internal/app"
	"github.com/law-makers/bulletin/internal/config"
)

// now is the clock used to pick the current bulletin month
var now = time.Now

// NewRootCmd builds the command tree. Running the root command with no
// arguments refreshes the current month's CSV files.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bulletin",
		Short: "Export visa bulletin tables to CSV",
		Long: `Bulletin fetches the monthly U.S. visa bulletin, extracts the tables for one
case category (Family by default), normalizes dates like 01JAN24 to
01/01/2024 and writes them to CSV.

The first qualifying table is written to <category>_a.csv and the second to
<category>_b.csv inside the output directory.`,
		Example: `  # Refresh the current month into ./public/data
  bulletin

  # Refresh a specific month into another directory
  bulletin --month 2024-01 -o ./data

  # Preview the tables without writing files
  bulletin show --month 2024-01`,
		Version:       "0.1.0",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRefresh,
	}

	config.RegisterFlags(rootCmd)
	addMonthFlag(rootCmd)

	rootCmd.PersistentPreRunE = initApp
	rootCmd.PersistentPostRun = closeApp

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(customHelpFunc)

	rootCmd.AddCommand(newShowCmd(), newBackfillCmd(), newCSPACmd())
	return rootCmd
}

// Execute runs the root command with ctx, exiting non-zero on failure.
// This is called by main.main().
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			log.Warn().Msg("Interrupt received, shutting down")
		}
		os.Exit(1)
	}
}

// initApp lazily builds the Application so -h and --version stay cheap
func initApp(cmd *cobra.Command, args []string) error {
	if GetAppFromCmd(cmd) != nil {
		return nil
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	log.Debug().Str("user_agent", cfg.UserAgent).Str("command", cmd.Name()).Msg("Configuration loaded")
	SetApp(cmd, a)
	return nil
}

func closeApp(cmd *cobra.Command, args []string) {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.Close(ctx)
}

func addMonthFlag(cmd *cobra.Command) {
	cmd.Flags().String("month", "", "Bulletin month as YYYY-MM (default: current month)")
}

func mustApp(cmd *cobra.Command) (*app.Application, error) {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}
