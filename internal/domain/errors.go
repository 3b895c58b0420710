package domain

import "errors"

var (
	// ErrProjectRootNotFound means no project root could be located.
	ErrProjectRootNotFound = errors.New("project root not found")

	// ErrBusy means another remediation pass holds the project lock.
	ErrBusy = errors.New("remediation already running for this project")

	// ErrAlreadyFixed is returned by a fixer when the target state is
	// already in place.
	ErrAlreadyFixed = errors.New("already fixed")

	// ErrNotApplicable is returned by a fixer when the issue no longer
	// matches the project files.
	ErrNotApplicable = errors.New("issue no longer present")
)

// IsFatal reports whether err must abort the whole invocation.
func IsFatal(err error) bool {
	return errors.Is(err, ErrProjectRootNotFound) || errors.Is(err, ErrBusy)
}
