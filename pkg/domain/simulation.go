package domain

// Status is the single user-facing verdict derived from a simulation run.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// SimulationOutcome is the raw result of one protocol simulation call.
type SimulationOutcome struct {
	Succeeded       bool   `json:"succeeded"`
	WarningsPresent bool   `json:"warnings_present"`
	StatusMessage   string `json:"status_message"`
	RawLog          string `json:"raw_log,omitempty"`
	ErrorMessage    string `json:"error_message,omitempty"`
	WarningDetail   string `json:"warning_detail,omitempty"`
}

// DeriveStatus maps the raw simulation signals to one Status. The table is
// exhaustive over its inputs; any new outcome dimension must widen the
// table instead of branching around it.
func DeriveStatus(invoked, succeeded, warningsPresent bool) Status {
	switch {
	case !invoked:
		return StatusIdle
	case !succeeded:
		return StatusError
	case warningsPresent:
		return StatusWarning
	default:
		return StatusSuccess
	}
}
