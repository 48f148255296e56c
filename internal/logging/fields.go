package logging

// Field names shared across components so log output can be filtered consistently.
const (
	FieldFile        = "file_path"
	FieldDataset     = "dataset"
	FieldRow         = "row"
	FieldReason      = "reason"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldCount       = "count"
	FieldRejected    = "rejected"
	FieldHeaderRow   = "header_row"
	FieldKind        = "kind"
	FieldDuration    = "duration_ms"
)
