package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file (optional)")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "Set hard timeout for the bulletin request")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArrayP("header", "H", []string{}, "Extra request header (e.g., -H \"Accept-Language: en\")")
	cmd.PersistentFlags().String("base-url", "", "Bulletin directory URL")
	cmd.PersistentFlags().Bool("fiscal-year-path", false, "File October-December bulletins under the next year's directory")
	cmd.PersistentFlags().String("category", "", "Case category that identifies tables to export")
	cmd.PersistentFlags().StringP("output-dir", "o", "", "Directory for the CSV destinations")
	cmd.PersistentFlags().Bool("strict", false, "Fail on rows that do not have exactly six cells")
}
