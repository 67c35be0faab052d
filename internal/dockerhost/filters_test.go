package dockerhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleFilter(t *testing.T) {
	parsed, err := ParseFilters([]string{"status=running"})
	require.NoError(t, err)
	assert.Equal(t, []string{"running"}, parsed["status"])
}

func TestParseMultipleFilters(t *testing.T) {
	parsed, err := ParseFilters([]string{"status=running", "name=nginx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"running"}, parsed["status"])
	assert.Equal(t, []string{"nginx"}, parsed["name"])
}

func TestParseMultipleValuesSameKeyOR(t *testing.T) {
	parsed, err := ParseFilters([]string{"status=running", "status=paused"})
	require.NoError(t, err)
	assert.Equal(t, []string{"running", "paused"}, parsed["status"])
}

func TestParseLabelFilterKeepsEmbeddedEquals(t *testing.T) {
	parsed, err := ParseFilters([]string{"label=com.example.version=1.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.version=1.0"}, parsed["label"])
}

func TestParseEmptyValue(t *testing.T) {
	parsed, err := ParseFilters([]string{"label="})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, parsed["label"])
}

func TestParseInvalidFormatNoEquals(t *testing.T) {
	_, err := ParseFilters([]string{"status"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter format")
}

func TestParseEmptyFilterList(t *testing.T) {
	parsed, err := ParseFilters(nil)
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestParseAncestorFilter(t *testing.T) {
	parsed, err := ParseFilters([]string{"ancestor=ubuntu:24.04"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ubuntu:24.04"}, parsed["ancestor"])
}

func TestParseNetworkFilter(t *testing.T) {
	parsed, err := ParseFilters([]string{"network=bridge"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bridge"}, parsed["network"])
}
