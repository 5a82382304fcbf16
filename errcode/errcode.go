package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"
	NotReady      Code = "not_ready"

	UnknownPort   Code = "unknown_port"
	UnknownPin    Code = "unknown_pin"
	PinConflict   Code = "pin_conflict"
	DuplicateName Code = "duplicate_name"
	InvalidMode   Code = "invalid_mode"
	InvalidPull   Code = "invalid_pull"
	MissingOwner  Code = "missing_owner"
	ClockDisabled Code = "clock_disabled"
	ParseError    Code = "parse_error"

	Error Code = "error" // generic fallback
)

// E keeps a code together with the failing operation and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap builds an *E whose code is taken from cause.
func Wrap(op, msg string, cause error) *E {
	return &E{C: Of(cause), Op: op, Msg: msg, Err: cause}
}

// Of extracts a Code from an error, defaulting to Error.
// Plain errors whose text is a known code map to that code, which keeps
// sentinel errors declared with errors.New("pin_conflict") comparable.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	if c, ok := known[err.Error()]; ok {
		return c
	}
	return Error
}

var known = map[string]Code{
	string(Unsupported):   Unsupported,
	string(InvalidParams): InvalidParams,
	string(NotReady):      NotReady,
	string(UnknownPort):   UnknownPort,
	string(UnknownPin):    UnknownPin,
	string(PinConflict):   PinConflict,
	string(DuplicateName): DuplicateName,
	string(InvalidMode):   InvalidMode,
	string(InvalidPull):   InvalidPull,
	string(MissingOwner):  MissingOwner,
	string(ClockDisabled): ClockDisabled,
	string(ParseError):    ParseError,
}
