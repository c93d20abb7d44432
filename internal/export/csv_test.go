package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/bulletin/pkg/models"
)

var sampleRows = []models.Row{
	{Preference: "F1", Other: "12/01/2014", China: "12/01/2014", India: "12/01/2014", Mexico: "04/01/2001", Philippines: "03/01/2012"},
	{Preference: "F2A", Other: "C", China: "C", India: "C", Mexico: "C", Philippines: "C"},
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "preference,other,china,india,mexico,philippines\n" +
		"F1,12/01/2014,12/01/2014,12/01/2014,04/01/2001,03/01/2012\n" +
		"F2A,C,C,C,C,C\n"
	if buf.String() != want {
		t.Errorf("Unexpected CSV:\n%s", buf.String())
	}
}

func TestWriteCSV_QuotesDelimiters(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.Row{{Preference: "F1, adjusted", Other: "C", China: "C", India: "C", Mexico: "C", Philippines: "C"}}
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"F1, adjusted",C`) {
		t.Errorf("Expected embedded comma to be quoted, got %q", buf.String())
	}
}

func TestNewDestinations(t *testing.T) {
	d := NewDestinations("public/data", "Family")
	if d.A != filepath.Join("public/data", "family_a.csv") {
		t.Errorf("Unexpected A: %s", d.A)
	}
	if d.B != filepath.Join("public/data", "family_b.csv") {
		t.Errorf("Unexpected B: %s", d.B)
	}
	if _, _, ok := d.For(2); ok {
		t.Error("Expected no slot for ordinal 2")
	}
}

func TestWriter_WriteTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "data")
	w := NewWriter(NewDestinations(dir, "Family"))

	tables := []models.Table{
		{Ordinal: 0, Rows: sampleRows},
		{Ordinal: 1, Rows: sampleRows[:1]},
	}

	files, err := w.WriteTables(tables)
	if err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0].Destination != "A" || files[1].Destination != "B" {
		t.Errorf("Unexpected destinations %s, %s", files[0].Destination, files[1].Destination)
	}

	a := readLines(t, filepath.Join(dir, "family_a.csv"))
	if len(a) != 3 {
		t.Errorf("Expected header plus 2 rows in A, got %d lines", len(a))
	}
	if a[0] != strings.Join(models.Columns, ",") {
		t.Errorf("Unexpected header %q", a[0])
	}

	b := readLines(t, filepath.Join(dir, "family_b.csv"))
	if len(b) != 2 {
		t.Errorf("Expected header plus 1 row in B, got %d lines", len(b))
	}
}

func TestWriter_ThirdTableDoesNotOverwriteB(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(NewDestinations(dir, "family"))

	third := []models.Row{{Preference: "X", Other: "C", China: "C", India: "C", Mexico: "C", Philippines: "C"}}
	tables := []models.Table{
		{Ordinal: 0, Rows: sampleRows},
		{Ordinal: 1, Rows: sampleRows},
		{Ordinal: 2, Rows: third},
	}

	files, err := w.WriteTables(tables)
	if err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(files))
	}

	b := readLines(t, filepath.Join(dir, "family_b.csv"))
	if len(b) != 3 || strings.HasPrefix(b[1], "X,") {
		t.Errorf("Destination B was overwritten: %v", b)
	}
}

func TestWriter_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family_a.csv")
	if err := os.WriteFile(path, []byte("stale\nstale\nstale\nstale\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(NewDestinations(dir, "family"))
	if _, err := w.WriteTables([]models.Table{{Ordinal: 0, Rows: sampleRows[:1]}}); err != nil {
		t.Fatalf("WriteTables failed: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 || lines[0] == "stale" {
		t.Errorf("Expected file to be replaced, got %v", lines)
	}
}
