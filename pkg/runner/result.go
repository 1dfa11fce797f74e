package runner

// IssueKind classifies an Issue.
type IssueKind string

const (
	// IssueDate is a DATE value that could not be parsed.
	IssueDate IssueKind = "date"
	// IssuePointer is a pointer to a record that does not exist.
	IssuePointer IssueKind = "pointer"
)

// Issue is a problem found in an otherwise readable file.
type Issue struct {
	Kind IssueKind `json:"kind"`

	// Record is the xref, or the tag, of the level-0 record containing
	// the problem.
	Record  string `json:"record"`
	Tag     string `json:"tag"`
	Offset  int64  `json:"offset"`
	Message string `json:"message"`
}

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	Path    string `json:"path"`
	Codec   string `json:"codec,omitempty"`
	Dialect string `json:"dialect,omitempty"`

	Records     int `json:"records"`
	Individuals int `json:"individuals"`
	Families    int `json:"families"`
	Events      int `json:"events"`

	// Issues are malformed dates and dangling pointers, in file order.
	Issues []Issue `json:"issues,omitempty"`

	// Error is set when the file could not be read at all.
	Error error `json:"-"`
}

// Stats are totals over all files of a run.
type Stats struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesChecked    int `json:"files_checked"`
	FilesErrored    int `json:"files_errored"`
	FilesWithIssues int `json:"files_with_issues"`

	Records          int `json:"records"`
	DateErrors       int `json:"date_errors"`
	DanglingPointers int `json:"dangling_pointers"`
}

// Result is the outcome of a run. Files are ordered by path.
type Result struct {
	Files []FileOutcome `json:"files"`
	Stats Stats         `json:"stats"`
}

// HasFailures reports whether any file could not be read.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasIssues reports whether any readable file has issues.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.FilesWithIssues > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesChecked++
	r.Stats.Records += outcome.Records
	if len(outcome.Issues) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, issue := range outcome.Issues {
		switch issue.Kind {
		case IssueDate:
			r.Stats.DateErrors++
		case IssuePointer:
			r.Stats.DanglingPointers++
		}
	}
}
