package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/bulletin/internal/bulletin"
	"github.com/law-makers/bulletin/internal/export"
	"github.com/law-makers/bulletin/internal/pipeline"
	"github.com/law-makers/bulletin/internal/ui"
	"github.com/law-makers/bulletin/pkg/models"
)

// previewRows is how many rows of each table are echoed after a refresh
const previewRows = 5

// runRefresh writes the CSV destinations for the selected month.
// A bulletin that is not published yet is reported and is not an error.
func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := mustApp(cmd)
	if err != nil {
		return err
	}
	m, err := monthFromFlag(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	quiet := a.Config.LogLevel == "error"
	if !quiet {
		fmt.Fprintf(out, "%s %s\n", ui.Bold("Fetching"), a.Fetcher.URL(m))
	}

	res, err := a.Runner.Run(cmd.Context(), m)
	if errors.Is(err, bulletin.ErrPageNotFound) {
		fmt.Fprintln(out, ui.Info(fmt.Sprintf("Page not found: the %s bulletin is not published yet", m)))
		return nil
	}
	if err != nil {
		return err
	}

	if !quiet {
		printResult(out, res)
	}
	return nil
}

func printResult(out io.Writer, res *pipeline.Result) {
	if len(res.Tables) == 0 {
		fmt.Fprintln(out, ui.Info("No matching tables found; nothing written"))
		return
	}

	// files are written in ordinal order, one per destination
	for _, t := range res.Tables {
		if t.Ordinal >= len(res.Files) {
			fmt.Fprintf(out, "\n%s table %d (%d rows) skipped: no destination\n", ui.Error("!"), t.Ordinal+1, len(t.Rows))
			continue
		}
		f := res.Files[t.Ordinal]
		fmt.Fprintf(out, "\n%s %s (%d rows)\n", ui.Success("Saved"), f.Path, f.Rows)
		if t.Rejected > 0 {
			fmt.Fprintf(out, "%s\n", ui.Info(fmt.Sprintf("%d malformed rows dropped", t.Rejected)))
		}
		fmt.Fprint(out, export.Head(t.Rows, previewRows))
	}
	fmt.Fprintf(out, "\n%s in %s\n", ui.Success("Done"), res.Duration.Round(time.Millisecond))
}

// monthFromFlag returns --month when set, otherwise the current month
func monthFromFlag(cmd *cobra.Command) (models.Month, error) {
	raw, _ := cmd.Flags().GetString("month")
	if raw == "" {
		return models.Current(now()), nil
	}
	return models.ParseMonth(raw)
}
