package types

// MaxDiagnostics caps the row diagnostics kept on a ConversionResult.
const MaxDiagnostics = 100

// ConversionResult summarizes one conversion run.
type ConversionResult struct {
	RunID       string
	InputFile   string
	OutputFile  string
	Language    string
	RowsRead    int
	Products    int
	MainRows    int
	Variants    int
	Images      int
	Groups      int
	RowsWritten int
	Skipped     map[string]int
	Warnings    int
	Diagnostics []string
	// Dropped counts diagnostics beyond MaxDiagnostics.
	Dropped int
}

// AddDiagnostic records a row-level message, keeping at most MaxDiagnostics.
func (r *ConversionResult) AddDiagnostic(msg string) {
	if len(r.Diagnostics) >= MaxDiagnostics {
		r.Dropped++
		return
	}
	r.Diagnostics = append(r.Diagnostics, msg)
}

// SkippedTotal returns the number of rows and products left out.
func (r *ConversionResult) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// FileData is a parsed input file.
type FileData struct {
	Headers []string
	Rows    [][]string
	// HeaderRow is the 0-based row the header was found on.
	HeaderRow int
	// Lines holds the 1-based file line each row starts on.
	Lines []int
}

// Line returns the file line row i starts on. Without recorded lines it
// assumes one line per row.
func (d *FileData) Line(i int) int {
	if i < len(d.Lines) {
		return d.Lines[i]
	}
	return d.HeaderRow + i + 2
}

// MappedColumn pairs an input column with the import column it feeds.
type MappedColumn struct {
	Source string
	Target string
}

// Preview describes what a conversion of File would do.
type Preview struct {
	File       string
	OutputFile string
	Language   string
	Rows       int
	Mapped     []MappedColumn
	Unmapped   []string
}
