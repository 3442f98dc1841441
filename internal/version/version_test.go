package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestBuildInfoString(t *testing.T) {
	info := GetBuildInfo()

	s := info.String()
	assert.Contains(t, s, "formgate")
	assert.Contains(t, s, info.Version)
}
