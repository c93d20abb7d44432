package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/bulletin/internal/bulletin"
	"github.com/law-makers/bulletin/internal/ui"
	"github.com/law-makers/bulletin/pkg/models"
)

func newBackfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Export a range of past bulletins",
		Long: `Backfill runs the export for every month from --from to --to (inclusive),
one request at a time through the rate limiter. Each month is written to its
own directory, <output-dir>/<yyyy-mm>/. Months that are not published are
reported and skipped.`,
		Example: `  # Every 2023 bulletin
  bulletin backfill --from 2023-01 --to 2023-12

  # From January 2020 up to the current month, at most one request every 2s
  BULLETIN_RATE_LIMIT=0.5 bulletin backfill --from 2020-01`,
		Args: cobra.NoArgs,
		RunE: runBackfill,
	}
	cmd.Flags().String("from", "", "First month as YYYY-MM (required)")
	cmd.Flags().String("to", "", "Last month as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

// monthRange returns every month from first to last inclusive
func monthRange(first, last models.Month) ([]models.Month, error) {
	if last.Before(first) {
		return nil, fmt.Errorf("--to %s is before --from %s", last, first)
	}
	var months []models.Month
	for m := first; !last.Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months, nil
}

func runBackfill(cmd *cobra.Command, args []string) error {
	a, err := mustApp(cmd)
	if err != nil {
		return err
	}

	fromRaw, _ := cmd.Flags().GetString("from")
	first, err := models.ParseMonth(fromRaw)
	if err != nil {
		return err
	}
	last := models.Current(now())
	if toRaw, _ := cmd.Flags().GetString("to"); toRaw != "" {
		if last, err = models.ParseMonth(toRaw); err != nil {
			return err
		}
	}
	months, err := monthRange(first, last)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(months),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Backfilling"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(a.Config.LogLevel != "error"),
	)

	var written, missing, failed int
	for _, m := range months {
		bar.Describe(m.String())

		runner := a.RunnerFor(filepath.Join(a.Config.OutputDir, m.String()))
		res, err := runner.Run(cmd.Context(), m)
		switch {
		case err == nil:
			written += len(res.Files)
		case errors.Is(err, bulletin.ErrPageNotFound):
			missing++
			log.Info().Str("month", m.String()).Msg("Bulletin not published, skipping")
		case cmd.Context().Err() != nil:
			_ = bar.Exit()
			return cmd.Context().Err()
		default:
			failed++
			log.Error().Err(err).Str("month", m.String()).Msg("Backfill month failed")
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d months, %d files written, %d not published\n",
		ui.Success("Backfilled"), len(months), written, missing)
	if failed > 0 {
		return fmt.Errorf("%d of %d months failed", failed, len(months))
	}
	return nil
}
