package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFlagsOverrideConfigHosts(t *testing.T) {
	cfg := Config{Hosts: []HostEntry{{Host: "local"}}}
	out := Merge(cfg, CLIOverrides{Hosts: []string{"tcp://remote:2375"}, HostsSet: true})
	assert.Equal(t, []HostEntry{{Host: "tcp://remote:2375"}}, out.Hosts)
}

func TestMergeFiltersOverrideWhenHostsNotOverridden(t *testing.T) {
	cfg := Config{Hosts: []HostEntry{{Host: "local", Filters: []string{"status=running"}}}}
	out := Merge(cfg, CLIOverrides{Filters: []string{"name=nginx"}})
	assert.Equal(t, []string{"name=nginx"}, out.Hosts[0].Filters)
}

func TestMergeUnsetFlagsDoNotClobberConfig(t *testing.T) {
	cfg := Config{LogsBufferLength: 20000, ShowAll: true}
	out := Merge(cfg, CLIOverrides{})
	assert.Equal(t, 20000, out.LogsBufferLength)
	assert.True(t, out.ShowAll)
}

func TestMergeSetFlagsOverrideConfig(t *testing.T) {
	cfg := Config{LogsBufferLength: 20000, ShowAll: true}
	out := Merge(cfg, CLIOverrides{LogsBufferLength: 500, LogsBufferLengthSet: true, ShowAll: false, ShowAllSet: true})
	assert.Equal(t, 500, out.LogsBufferLength)
	assert.False(t, out.ShowAll)
}

func TestMergeIconSetOnlyAppliesWhenSet(t *testing.T) {
	cfg := Config{IconSet: "unicode"}
	unset := Merge(cfg, CLIOverrides{IconSet: "nerd"})
	assert.Equal(t, "unicode", unset.IconSet)

	set := Merge(cfg, CLIOverrides{IconSet: "nerd", IconSetSet: true})
	assert.Equal(t, "nerd", set.IconSet)
}
