package analysis

// noCode labels suggestions whose diagnostic carried no code.
const noCode = "(none)"

// Report holds the aggregated views of one fix run.
type Report struct {
	ByCode []CodeAnalysis `json:"byCode"`
	ByFile []FileAnalysis `json:"byFile"`
	Totals Totals         `json:"totals"`
}

// Totals counts suggestions across the whole run.
type Totals struct {
	Files       int `json:"files"`
	Codes       int `json:"codes"`
	Suggestions int `json:"suggestions"`
	Applied     int `json:"applied"`
	Skipped     int `json:"skipped"`

	// Unprocessed counts files that failed or were skipped as a whole.
	Unprocessed int `json:"unprocessed"`
}

// CodeAnalysis aggregates every suggestion of one diagnostic code.
type CodeAnalysis struct {
	Code        string `json:"code"`
	Suggestions int    `json:"suggestions"`
	Applied     int    `json:"applied"`
	Skipped     int    `json:"skipped"`

	// Reasons counts skipped suggestions by skip reason.
	Reasons map[string]int `json:"reasons,omitempty"`

	// Files lists the files the code touched, sorted.
	Files []string `json:"files"`
}

// FileAnalysis aggregates every suggestion aimed at one file.
type FileAnalysis struct {
	Name        string   `json:"name"`
	Suggestions int      `json:"suggestions"`
	Applied     int      `json:"applied"`
	Skipped     int      `json:"skipped"`
	Codes       []string `json:"codes"`
}

// Code returns the analysis of code, or nil when the run had none.
func (r *Report) Code(code string) *CodeAnalysis {
	for idx := range r.ByCode {
		if r.ByCode[idx].Code == code {
			return &r.ByCode[idx]
		}
	}
	return nil
}
