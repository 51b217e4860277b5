package model

// Status is a task's lifecycle state as reported by the Loopa API.
// The wire values are the service's Cyrillic literals and must round-trip
// unchanged; everything else in the client goes through this table instead
// of comparing raw strings.
type Status string

const (
	StatusPending    Status = "ожидает"
	StatusProcessing Status = "в процессе"
	StatusDone       Status = "готово"
	StatusError      Status = "ошибка"
)

// statusInfo maps each known wire literal to its English name.
var statusInfo = map[Status]string{
	StatusPending:    "pending",
	StatusProcessing: "processing",
	StatusDone:       "done",
	StatusError:      "error",
}

// IsTerminal reports whether no further status changes can happen.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusError
}

// IsSuccess reports whether the task completed with a usable transcript.
func (s Status) IsSuccess() bool {
	return s == StatusDone
}

// IsFailure reports whether the task ended with an error.
func (s Status) IsFailure() bool {
	return s == StatusError
}

// Known reports whether the status is one of the four documented wire values.
// Unknown values are carried through untouched and treated as non-terminal.
func (s Status) Known() bool {
	_, ok := statusInfo[s]
	return ok
}

// Name returns the English name for a known status, or the raw wire value
// for anything the client does not recognize.
func (s Status) Name() string {
	if name, ok := statusInfo[s]; ok {
		return name
	}
	return string(s)
}
