package errors

// Registered error codes.
const (
	CodeMalformedDeps     = "M001"
	CodeGateUnmounted     = "M002"
	CodePropShapeChanged  = "M003"
	CodeHookOrderChanged  = "M004"
	CodeUnknownSlot       = "M005"
	CodeRenderPanic       = "M006"
	CodePassFailed        = "M007"
	CodeHolderDisposed    = "M008"
	CodeUnknownGate       = "M009"
	CodeGateReentered     = "M010"
	CodeUnknownLesson     = "M011"
	CodeUnknownScenario   = "M012"
	CodeConfigNotFound    = "C001"
	CodeConfigInvalid     = "C002"
	CodeConfigParse       = "C003"
	CodeReportEncode      = "R001"
	CodeReportUpload      = "R002"
	CodeReportDestination = "R003"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Core Errors (M001-M099)
	// ============================================

	CodeMalformedDeps: {
		Category:   CategoryDeps,
		Message:    "Dependency list changed shape",
		Suggestion: "Pass the same number of dependencies on every render.",
		DocURL:     "https://memolab.dev/docs/errors/M001",
	},
	CodeGateUnmounted: {
		Category:   CategoryRender,
		Message:    "Gate used after unmount",
		Suggestion: "Mount a new instance instead of reusing a disposed gate.",
		DocURL:     "https://memolab.dev/docs/errors/M002",
	},
	CodePropShapeChanged: {
		Category:   CategoryDeps,
		Message:    "Prop keys changed between renders",
		Suggestion: "Always pass the same prop names to a memoized child; use nil for absent values.",
		DocURL:     "https://memolab.dev/docs/errors/M003",
	},
	CodeHookOrderChanged: {
		Category:   CategoryRender,
		Message:    "Hook order changed",
		Suggestion: "Call hooks unconditionally and in the same order on every render.",
		DocURL:     "https://memolab.dev/docs/errors/M004",
	},
	CodeUnknownSlot: {
		Category:   CategoryRender,
		Message:    "Unknown state slot",
		Suggestion: "Declare the slot when constructing the state holder.",
		DocURL:     "https://memolab.dev/docs/errors/M005",
	},
	CodeRenderPanic: {
		Category: CategoryRender,
		Message:  "Render logic panicked",
		DocURL:   "https://memolab.dev/docs/errors/M006",
	},
	CodePassFailed: {
		Category: CategoryRender,
		Message:  "Render pass failed and was rolled back",
		DocURL:   "https://memolab.dev/docs/errors/M007",
	},
	CodeHolderDisposed: {
		Category: CategoryRender,
		Message:  "State holder disposed",
		DocURL:   "https://memolab.dev/docs/errors/M008",
	},

	CodeUnknownGate: {
		Category: CategoryRender,
		Message:  "Unknown gate",
		DocURL:   "https://memolab.dev/docs/errors/M009",
	},
	CodeGateReentered: {
		Category:   CategoryRender,
		Message:    "Gate evaluated twice in one pass",
		Suggestion: "Give each memoized child a unique name within its parent.",
		DocURL:     "https://memolab.dev/docs/errors/M010",
	},
	CodeUnknownLesson: {
		Category: CategoryRender,
		Message:  "Unknown lesson",
		DocURL:   "https://memolab.dev/docs/errors/M011",
	},
	CodeUnknownScenario: {
		Category:   CategoryCLI,
		Message:    "Unknown scenario",
		Suggestion: "Run 'memolab scenarios --list' to see the available scenarios.",
		DocURL:     "https://memolab.dev/docs/errors/M012",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Suggestion: "Create memolab.json or pass --config.",
		DocURL:     "https://memolab.dev/docs/errors/C001",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   "https://memolab.dev/docs/errors/C002",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
		DocURL:   "https://memolab.dev/docs/errors/C003",
	},

	// ============================================
	// Report Errors (R001-R099)
	// ============================================

	CodeReportEncode: {
		Category: CategoryReport,
		Message:  "Report encoding failed",
		DocURL:   "https://memolab.dev/docs/errors/R001",
	},
	CodeReportUpload: {
		Category:   CategoryReport,
		Message:    "Report upload failed",
		Suggestion: "Check the bucket name and that AWS credentials are set in the environment.",
		DocURL:     "https://memolab.dev/docs/errors/R002",
	},
	CodeReportDestination: {
		Category:   CategoryReport,
		Message:    "Invalid report destination",
		Suggestion: "Use s3://bucket/key or set report.bucket in the config.",
		DocURL:     "https://memolab.dev/docs/errors/R003",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
