package cli

import "github.com/openkraft/devpilot/internal/application"

// SetConfirmFixForTest replaces the interactive prompt and returns a restore func.
func SetConfirmFixForTest(f application.ConfirmFunc) func() {
	prev := confirmFix
	confirmFix = f
	return func() { confirmFix = prev }
}
