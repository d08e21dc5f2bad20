package catalog

import "errors"

// Kind classifies a command failure so the command loop can render it.
type Kind int

const (
	KindInternal Kind = iota
	// KindInput means the operator typed something unparseable.
	KindInput
	// KindPrecondition means a referenced file, user or asset does not exist; nothing was changed.
	KindPrecondition
	// KindTransport is an object-store failure.
	KindTransport
	// KindStore is a metadata-store failure.
	KindStore
	// KindData means a mutation affected no rows.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindStore:
		return "store"
	case KindData:
		return "data"
	default:
		return "internal"
	}
}

// Error is the result of a failed command.
type Error struct {
	Kind Kind
	Op   string
	// Msg is the operator-facing message; may be empty for wrapped failures.
	Msg string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Op + ": " + e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Op + ": " + e.Msg
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op + ": " + e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

func fail(kind Kind, op, msg string, err error) error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}
