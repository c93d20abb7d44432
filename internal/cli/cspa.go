package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/bulletin/internal/cspa"
	"github.com/law-makers/bulletin/internal/ui"
)

// dateLayouts are accepted for the cspa date flags
var dateLayouts = []string{"2006-01-02", "01/02/2006"}

func newCSPACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cspa",
		Short: "Estimate a CSPA age from an exported bulletin",
		Long: `Cspa estimates the Child Status Protection Act age of a derivative
beneficiary. The petition's pending time (priority date to approval date) is
subtracted from the applicant's age on the bulletin date for the preference
and country. A CSPA age under 21 is reported as available.

The bulletin date is read from a CSV written by this tool, by default the
A destination in the output directory. A "C" (current) entry uses --on.`,
		Example: `  # F2A, Mexico, using ./public/data/family_a.csv
  bulletin cspa --birth 2005-03-14 --priority 2019-06-01 --approval 2021-02-10 --preference F2A --country mexico

  # Against a backfilled month, as JSON
  bulletin cspa --csv ./public/data/2024-01/family_a.csv --birth 01/20/2004 --priority 02/01/2020 --approval 03/01/2023 --preference F1 --country other --format json`,
		Args: cobra.NoArgs,
		RunE: runCSPA,
	}
	cmd.Flags().String("csv", "", "Bulletin CSV (default: <output-dir>/<category>_a.csv)")
	cmd.Flags().String("birth", "", "Beneficiary date of birth (YYYY-MM-DD or MM/DD/YYYY)")
	cmd.Flags().String("priority", "", "Petition priority date")
	cmd.Flags().String("approval", "", "Petition approval date")
	cmd.Flags().String("preference", "F2A", "Preference category row (e.g. F1, F2A)")
	cmd.Flags().String("country", "other", "Chargeability country column")
	cmd.Flags().String("on", "", "Evaluation date used for current categories (default: today)")
	cmd.Flags().String("format", "text", "Output format: text or json")
	for _, name := range []string{"birth", "priority", "approval"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runCSPA(cmd *cobra.Command, args []string) error {
	a, err := mustApp(cmd)
	if err != nil {
		return err
	}

	dates := make(map[string]time.Time, 4)
	for _, name := range []string{"birth", "priority", "approval", "on"} {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			continue
		}
		d, err := parseDate(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		dates[name] = d
	}
	on, ok := dates["on"]
	if !ok {
		on = now()
	}

	path, _ := cmd.Flags().GetString("csv")
	if path == "" {
		path = filepath.Join(a.Config.OutputDir, strings.ToLower(a.Config.Category)+"_a.csv")
	}
	calc, err := cspa.LoadFile(path)
	if err != nil {
		return err
	}

	preference, _ := cmd.Flags().GetString("preference")
	country, _ := cmd.Flags().GetString("country")
	res, err := calc.Evaluate(dates["birth"], dates["priority"], dates["approval"], preference, country, on)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "text":
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	verdict := ui.Success(string(res.Type))
	if res.Type == cspa.Unavailable {
		verdict = ui.Error(string(res.Type))
	}
	fmt.Fprintf(out, "%s  %s\n", ui.Bold("CSPA age:"), res.CSPAAge)
	fmt.Fprintf(out, "%s  %s\n", ui.Bold("Actual age:"), res.ActualAge)
	fmt.Fprintf(out, "%s  %d days\n", ui.Bold("Pending:"), res.DaysPending)
	fmt.Fprintf(out, "%s  %s\n", ui.Bold("Result:"), verdict)
	return nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}
