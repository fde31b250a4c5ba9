package ir

// Version constants for trace records and the runtime.
const (
	// TraceVersion is the trace record schema version.
	TraceVersion = "1"

	// RuntimeVersion is the hookrt runtime version.
	RuntimeVersion = "0.1.0"
)
