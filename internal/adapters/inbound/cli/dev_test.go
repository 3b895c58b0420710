package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevCommand_RejectsUnknownMode(t *testing.T) {
	_, err := run(t, "dev", "--path", copyFixture(t, "healthy"), "--mode", "loud")
	assert.Error(t, err)
}

func TestDevCommandExists(t *testing.T) {
	_, err := run(t, "dev", "--help")
	assert.NoError(t, err)
}
