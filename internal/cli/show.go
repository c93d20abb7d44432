package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/bulletin/internal/bulletin"
	"github.com/law-makers/bulletin/internal/export"
	"github.com/law-makers/bulletin/internal/ui"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Preview the matching tables without writing files",
		Long: `Show fetches the bulletin and prints every table that matches the category
as markdown. By default the normalized rows are printed exactly as they would
be written to CSV; --source renders the table as published instead.`,
		Example: `  # Normalized rows for the current month
  bulletin show

  # The published January 2024 tables
  bulletin show --month 2024-01 --source`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	addMonthFlag(cmd)
	cmd.Flags().Bool("source", false, "Render the published table instead of the normalized rows")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := mustApp(cmd)
	if err != nil {
		return err
	}
	m, err := monthFromFlag(cmd)
	if err != nil {
		return err
	}
	source, _ := cmd.Flags().GetBool("source")

	out := cmd.OutOrStdout()
	res, err := a.Runner.Preview(cmd.Context(), m)
	if errors.Is(err, bulletin.ErrPageNotFound) {
		fmt.Fprintln(out, ui.Info(fmt.Sprintf("Page not found: the %s bulletin is not published yet", m)))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", ui.Bold(m.String()), res.URL)
	if len(res.Tables) == 0 {
		fmt.Fprintln(out, ui.Info("No matching tables found"))
		return nil
	}

	dest := a.Writer.Destinations()
	for _, t := range res.Tables {
		target := "skipped"
		if name, path, ok := dest.For(t.Ordinal); ok {
			target = fmt.Sprintf("%s -> %s", name, path)
		}
		fmt.Fprintf(out, "\n%s %d: %d rows (%s)\n", ui.Bold("Table"), t.Ordinal+1, len(t.Rows), target)

		if !source {
			fmt.Fprint(out, export.Head(t.Rows, 0))
			continue
		}
		rendered, err := export.RenderMarkdown(t.HTML)
		if err != nil {
			return fmt.Errorf("failed to render table %d: %w", t.Ordinal+1, err)
		}
		fmt.Fprintln(out, rendered)
	}
	return nil
}
