package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run options.
	FieldOnly    = "only"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"
	FieldBackups = "backups"

	// Suggestion fields.
	FieldCode         = "code"
	FieldLevel        = "level"
	FieldRange        = "range"
	FieldReason       = "reason"
	FieldSuggestions  = "suggestions"
	FieldReplacements = "replacements"

	// Statistics fields.
	FieldDiagnostics      = "diagnostics"
	FieldFilesProcessed   = "files_processed"
	FieldFilesModified    = "files_modified"
	FieldFilesSkipped     = "files_skipped"
	FieldSuggestionsTotal = "suggestions_total"
	FieldApplied          = "applied"
	FieldSkipped          = "skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
