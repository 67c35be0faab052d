package dockerhost

import (
	"testing"

	"github.com/dtop/dtop/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestCreateHostIDLocal(t *testing.T) {
	assert.Equal(t, core.HostID("local"), CreateHostID("local"))
}

func TestCreateHostIDSSH(t *testing.T) {
	assert.Equal(t, core.HostID("box.example.com"), CreateHostID("ssh://user@box.example.com:22"))
}

func TestCreateHostIDTCP(t *testing.T) {
	assert.Equal(t, core.HostID("10.0.0.5"), CreateHostID("tcp://10.0.0.5:2375"))
}

func TestCreateHostIDFallsBackToRawSpec(t *testing.T) {
	assert.Equal(t, core.HostID("not a url"), CreateHostID("not a url"))
}
