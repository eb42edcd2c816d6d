package ir

// Version constants for the data file and the tool.
const (
	// SchemaVersion is the features-data.json schema version.
	SchemaVersion = "1"

	// ToolVersion is the featuredb release version.
	ToolVersion = "0.1.0"
)
