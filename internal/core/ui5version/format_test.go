package ui5version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFormattedVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.96.0-snapshot", "snapshot-1.96"},
		{"snapshot-1.96", "snapshot-1.96"},
		{"1.120.1 (latest)", "1.120.1"},
		{"1.96.0 (system version)", "1.96.0"},
		{"1.71.40", "1.71.40"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetFormattedVersion(tt.in), "input %q", tt.in)
	}
}

func TestRemoveMicroPart(t *testing.T) {
	assert.Equal(t, "1.87", RemoveMicroPart("1.87.3"))
	assert.Equal(t, "1.96", RemoveMicroPart("1.96.0-snapshot"))
	assert.Equal(t, "1.96", RemoveMicroPart("snapshot-untested-1.96.2"))
	assert.Equal(t, "1", RemoveMicroPart("1"))
}

func TestRemoveTimestampFromVersion(t *testing.T) {
	assert.Equal(t, "1.97.0", RemoveTimestampFromVersion("1.97.0.1634567890"))
	assert.Equal(t, "1.97.0", RemoveTimestampFromVersion("1.97.0"))
}

func TestRemoveBracketsFromVersion(t *testing.T) {
	assert.Equal(t, "1.120.0", RemoveBracketsFromVersion("1.120.0 (latest)"))
	assert.Equal(t, "1.96.0", RemoveBracketsFromVersion("1.96.0 (system version)"))
	assert.Equal(t, "", RemoveBracketsFromVersion(""))
}

func TestAddSnapshot(t *testing.T) {
	assert.Equal(t, "1.120.0-snapshot", AddSnapshot("1.120.0.1700000000", "1.120.1"))
	assert.Equal(t, "1.121.0-snapshot-untested", AddSnapshot("1.121.0.1700000000", "1.120.1"))
	assert.Equal(t, "1.96.0", AddSnapshot("1.96.0", "1.120.1"))
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.97.0.1634567890")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 1, Minor: 97, Patch: 0, Timestamp: "1634567890", Snapshot: true}, v)
	assert.Equal(t, "1.97.0", v.String())

	v, err = ParseVersion("1.96.0-snapshot")
	require.NoError(t, err)
	assert.True(t, v.Snapshot)
	assert.Equal(t, 96, v.Minor)

	_, err = ParseVersion("")
	assert.Error(t, err)

	_, err = ParseVersion("1.x.0")
	assert.Error(t, err)
}

func TestIsFeatureSupportedVersion(t *testing.T) {
	assert.True(t, IsFeatureSupportedVersion("1.84.0", "1.85.0"))
	assert.True(t, IsFeatureSupportedVersion("1.84.0", "1.84.0"))
	assert.False(t, IsFeatureSupportedVersion("1.84.0", "1.83.9"))
	assert.True(t, IsFeatureSupportedVersion("1.84.0", "2.0.0"))
	assert.True(t, IsFeatureSupportedVersion("1.84.0", "1.84.1 (latest)"))
	assert.True(t, IsFeatureSupportedVersion("1.200.0", "snapshot-1.96"))
	assert.True(t, IsFeatureSupportedVersion("1.84.0", "1.84.0.1634567890"))
	assert.False(t, IsFeatureSupportedVersion("1.84.0", ""))
	assert.False(t, IsFeatureSupportedVersion("", "1.85.0"))
	assert.False(t, IsFeatureSupportedVersion("1.84.0", "one.two"))
}

func TestGetOfficialBaseUI5VersionURL(t *testing.T) {
	assert.Equal(t, SnapshotCDNURL, GetOfficialBaseUI5VersionURL("1.96.0-snapshot"))
	assert.Equal(t, DefaultCDNURL, GetOfficialBaseUI5VersionURL("1.96.0"))
}

func TestCheckSystemVersionPattern(t *testing.T) {
	assert.Equal(t, "1.96.0", CheckSystemVersionPattern("1.96.0"))
	assert.Equal(t, "1.97.0.1634567890", CheckSystemVersionPattern("1.97.0.1634567890"))
	assert.Equal(t, "", CheckSystemVersionPattern("not-a-version"))
	assert.Equal(t, "", CheckSystemVersionPattern("0.1.0"))
}

func TestGetVersionToBeUsed(t *testing.T) {
	released := []string{"1.120.1", "1.96.30"}
	assert.Equal(t, "1.120.1", GetVersionToBeUsed("", true, "1.120.1", released))
	assert.Equal(t, "1.96.30", GetVersionToBeUsed("1.96.30 (system version)", true, "1.120.1", released))
	assert.Equal(t, "1.120.1", GetVersionToBeUsed("1.97.0", true, "1.120.1", released))
	assert.Equal(t, "1.97.0", GetVersionToBeUsed("1.97.0", false, "1.120.1", released))
}
