package export

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/law-makers/bulletin/pkg/models"
)

// RenderMarkdown converts a source bulletin table to a GitHub-flavored markdown table
func RenderMarkdown(tableHTML string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	cleaned, err := CleanHTML(tableHTML)
	if err != nil {
		return "", err
	}
	return converter.ConvertString(cleaned)
}

// Head renders the header and up to n normalized rows as a markdown table.
// n <= 0 renders every row.
func Head(rows []models.Row, n int) string {
	if n <= 0 || n > len(rows) {
		n = len(rows)
	}

	var sb strings.Builder
	writeLine := func(cells []string) {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString(" |\n")
	}

	writeLine(models.Columns)
	sep := make([]string, len(models.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	writeLine(sep)
	for _, row := range rows[:n] {
		writeLine(row.Record())
	}
	return sb.String()
}
