package domain

import "time"

// PortState is the tri-state answer for "is something listening on this port".
type PortState string

const (
	PortUp      PortState = "up"
	PortDown    PortState = "down"
	PortUnknown PortState = "unknown"
)

// EnvironmentStatus is a point-in-time view of the local dev environment.
// It is recomputed on every probe and never cached.
type EnvironmentStatus struct {
	Frontend       PortState         `json:"frontend"`
	Backend        PortState         `json:"backend"`
	FrontendPort   int               `json:"frontend_port"`
	BackendPort    int               `json:"backend_port"`
	EnvFile        string            `json:"env_file"`
	EnvFilePresent bool              `json:"env_file_present"`
	Flags          map[string]string `json:"flags,omitempty"`
	Degraded       []string          `json:"degraded,omitempty"`
	ProbedAt       time.Time         `json:"probed_at"`
}

// IsDegraded reports whether any field could not be determined.
func (s EnvironmentStatus) IsDegraded() bool { return len(s.Degraded) > 0 }

// GitStatus describes the checkout's version-control state.
type GitStatus struct {
	Available bool   `json:"available"`
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Dirty     bool   `json:"dirty"`
}

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp          string `json:"timestamp"`
	Command            string `json:"command"`
	CommitHash         string `json:"commit_hash,omitempty"`
	Issues             int    `json:"issues"`
	Fixed              int    `json:"fixed"`
	Skipped            int    `json:"skipped"`
	Failed             int    `json:"failed"`
	CriticalUnresolved int    `json:"critical_unresolved"`
}

// StatusSummary aggregates everything the status command reports.
type StatusSummary struct {
	Root    string            `json:"root"`
	Env     EnvironmentStatus `json:"env"`
	Git     GitStatus         `json:"git"`
	LastRun *RunRecord        `json:"last_run,omitempty"`
	History []RunEntry        `json:"history,omitempty"`
	Notes   []string          `json:"notes,omitempty"`
}
