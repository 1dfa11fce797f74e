package logging

// Structured field names.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldConfig = "config"
	FieldFormat = "format"

	// Parsing.
	FieldCodec   = "codec"
	FieldBOM     = "bom"
	FieldDialect = "dialect"
	FieldOffset  = "offset"
	FieldLine    = "line"
	FieldXRef    = "xref"
	FieldTag     = "tag"
	FieldRecords = "records"

	// Export.
	FieldDatabase    = "database"
	FieldRun         = "run"
	FieldIndividuals = "individuals"
	FieldFamilies    = "families"
	FieldEvents      = "events"

	// Build info.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
