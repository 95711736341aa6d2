package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/impulso-stone/mentores-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes("")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_Custom(t *testing.T) {
	got, err := parseProfileTypes("cpu, alloc_space,mutex,cpu")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported O11Y_PROFILING_SAMPLE_TYPES")
}

func TestProfileTags(t *testing.T) {
	obs := config.ObservabilityConfig{
		ServiceName:      "mentores-api",
		ServiceNamespace: "impulso",
		ServiceVersion:   "1.2.0",
	}

	tags := profileTags(obs, "production")
	assert.Equal(t, "mentores-api", tags["service_name"])
	assert.Equal(t, "production", tags["environment"])
	assert.NotContains(t, tags, "instance")

	obs.ServiceInstanceID = "pod-1"
	assert.Equal(t, "pod-1", profileTags(obs, "production")["instance"])
}

func TestInitProfiler_Disabled(t *testing.T) {
	stop, err := InitProfiler(config.ProfilingConfig{Enabled: false}, config.ObservabilityConfig{}, "test")
	require.NoError(t, err)
	assert.NotPanics(t, stop)
}

func TestInitProfiler_MissingEndpoint(t *testing.T) {
	_, err := InitProfiler(config.ProfilingConfig{Enabled: true, Endpoint: "  "}, config.ObservabilityConfig{}, "test")
	assert.ErrorContains(t, err, "endpoint is required")
}
