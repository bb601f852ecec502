package catalog

type StatusKind string

const (
	StatusIdle      StatusKind = "IDLE"
	StatusPending   StatusKind = "PENDING"
	StatusSucceeded StatusKind = "SUCCEEDED"
	StatusFailed    StatusKind = "FAILED"
)

// Status is the lifecycle of one submit attempt. Message is only set for
// Succeeded and Failed.
type Status struct {
	Kind    StatusKind
	Message string
}

var validNext = map[StatusKind]map[StatusKind]bool{
	StatusIdle:      {StatusPending: true},
	StatusPending:   {StatusSucceeded: true, StatusFailed: true},
	StatusSucceeded: {StatusPending: true},
	StatusFailed:    {StatusPending: true},
}

func CanTransition(from, to StatusKind) bool {
	return validNext[from][to]
}

func Idle() Status                { return Status{Kind: StatusIdle} }
func Pending() Status             { return Status{Kind: StatusPending} }
func Succeeded(msg string) Status { return Status{Kind: StatusSucceeded, Message: msg} }
func Failed(msg string) Status    { return Status{Kind: StatusFailed, Message: msg} }

func (s Status) IsPending() bool { return s.Kind == StatusPending }

func (s Status) String() string {
	if s.Message == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ": " + s.Message
}
