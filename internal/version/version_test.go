/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo_ContainsAllExpectedComponents(t *testing.T) {
	info := Info()

	// Should contain all expected components
	assert.Contains(t, info, "authfront", "info should contain application name")
	assert.Contains(t, info, "Git commit:", "info should contain git commit label")
	assert.Contains(t, info, "Build date:", "info should contain build date label")
	assert.Contains(t, info, "Go version:", "info should contain go version label")
	assert.Contains(t, info, "Platform:", "info should contain platform label")

	// Should be multi-line format
	lines := strings.Split(info, "\n")
	assert.Len(t, lines, 5, "info should have exactly 5 lines")
}

func TestInfo_FormatsVersionCorrectly(t *testing.T) {
	info := Info()

	lines := strings.Split(info, "\n")
	require.Len(t, lines, 5)

	firstLine := lines[0]
	assert.True(t, strings.HasPrefix(firstLine, "authfront "), "first line should start with 'authfront '")
	assert.Contains(t, firstLine, Version, "first line should contain the version")
}

func TestInfo_IncludesRuntimeVariables(t *testing.T) {
	info := Info()

	// Should include actual runtime Go version
	assert.Contains(t, info, GoVersion, "should include actual Go version")
	assert.Contains(t, info, runtime.Version(), "should match runtime.Version()")

	// Should include actual platform
	assert.Contains(t, info, Platform, "should include actual platform")
	expectedPlatform := runtime.GOOS + "/" + runtime.GOARCH
	assert.Contains(t, info, expectedPlatform, "should match OS/ARCH format")
}

func TestShort_ReturnsVersionOnly(t *testing.T) {
	short := Short()

	assert.Equal(t, Version, short, "Short() should return exactly the Version variable")
}
