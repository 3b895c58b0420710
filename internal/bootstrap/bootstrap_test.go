package bootstrap_test

import (
	"testing"

	"github.com/openkraft/devpilot/internal/bootstrap"
	"github.com/stretchr/testify/assert"
)

func TestNew_WiresEveryService(t *testing.T) {
	svc := bootstrap.New(nil)

	assert.NotNil(t, svc.Resolver)
	assert.NotNil(t, svc.Scan)
	assert.NotNil(t, svc.Remediation)
	assert.NotNil(t, svc.Recorder)
	assert.NotNil(t, svc.Status)
	assert.NotNil(t, svc.Console)
	assert.NotNil(t, svc.Dev)
	assert.NotNil(t, svc.Store)
}
