package spec

// ErrorCode categorizes errors raised while loading a document or building
// a view model from it.
type ErrorCode string

const (
	// InputError covers unusable caller input: empty paths, blocked URL
	// schemes, unreadable files.
	InputError ErrorCode = "InputError"
	// NetworkError covers failures fetching a remote document.
	NetworkError ErrorCode = "NetworkError"
	// ParseError covers YAML/JSON decoding failures.
	ParseError ErrorCode = "ParseError"
	// ValidationError covers failures from the optional strict validation
	// pass over OpenAPI 3.x inputs.
	ValidationError ErrorCode = "ValidationError"
	// UnsupportedVersion is raised when a document carries none of the
	// recognized version markers (swagger: "2.0", openapi: 3.x, or
	// swaggerVersion: 1.x).
	UnsupportedVersion ErrorCode = "UnsupportedVersion"
	// BrokenReference is raised when a $ref pointer does not resolve
	// against the table its prefix names, or cannot be classified at all.
	BrokenReference ErrorCode = "BrokenReference"
	// MissingRequiredOption is raised when the caller omits a mandatory
	// option, such as the class name or the output directory in
	// multi-file mode.
	MissingRequiredOption ErrorCode = "MissingRequiredOption"
	// AmbiguousContentType marks a request body that declares several
	// content types. The first one (in sorted order) wins; the condition
	// is surfaced as a view-model warning, not a failure.
	AmbiguousContentType ErrorCode = "AmbiguousContentType"
)

// Error is a structured error with an optional source location and JSON
// pointer identifying the offending document node.
type Error struct {
	Code     ErrorCode
	Message  string
	Location string // file path or URL
	Pointer  string // e.g. "#/parameters/petId"
	Cause    error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }
