// Package ui5version normalizes UI5 version strings and resolves the UI5
// versions an adaptation project can be created with.
package ui5version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	SnapshotVersion    = "snapshot"
	SnapshotUntested   = "snapshot-untested"
	LatestLabel        = "(latest)"
	SystemVersionLabel = "(system version)"
	MinimumUI5Version  = "1.71.0"

	DefaultCDNURL  = "https://ui5.sap.com"
	NeoCDNURL      = "https://sapui5.hana.ondemand.com"
	SnapshotCDNURL = "https://sapui5preview-sapui5.dispatcher.int.sap.eu2.hana.ondemand.com"
)

var systemVersionPattern = regexp.MustCompile(`^[1-9]\.\d{1,3}\.\d{1,2}.*`)

// Version is a parsed UI5 version string.
type Version struct {
	Major     int
	Minor     int
	Patch     int
	Timestamp string
	Snapshot  bool
}

// String renders the version as major.minor.patch.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsSnapshot reports whether version names a snapshot build.
func IsSnapshot(version string) bool {
	return strings.Contains(strings.ToLower(version), SnapshotVersion)
}

// RemoveBracketsFromVersion drops a trailing "(latest)" or "(system version)" label.
func RemoveBracketsFromVersion(version string) string {
	if i := strings.Index(version, "("); i >= 0 {
		version = version[:i]
	}
	return strings.TrimSpace(version)
}

// RemoveTimestampFromVersion keeps major.minor.patch and drops a fourth build segment.
func RemoveTimestampFromVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		return strings.Join(parts[:3], ".")
	}
	return version
}

func stripSnapshot(version string) string {
	v := strings.TrimSpace(version)
	lower := strings.ToLower(v)
	for _, prefix := range []string{SnapshotUntested + "-", SnapshotVersion + "-"} {
		if strings.HasPrefix(lower, prefix) {
			v = v[len(prefix):]
			lower = lower[len(prefix):]
		}
	}
	if i := strings.Index(lower, "-"+SnapshotVersion); i >= 0 {
		v = v[:i]
	}
	return v
}

// RemoveMicroPart reduces a version to major.minor, e.g. "1.87.3" becomes "1.87".
func RemoveMicroPart(version string) string {
	v := stripSnapshot(RemoveBracketsFromVersion(version))
	parts := strings.Split(v, ".")
	if len(parts) < 2 {
		return v
	}
	return parts[0] + "." + parts[1]
}

// GetFormattedVersion returns "snapshot-<major.minor>" for snapshot versions
// and the label free version otherwise.
func GetFormattedVersion(version string) string {
	v := RemoveBracketsFromVersion(version)
	if IsSnapshot(v) {
		return SnapshotVersion + "-" + RemoveMicroPart(v)
	}
	return v
}

// AddSnapshot labels a four segment build version ("1.97.0.1634567890") as
// a snapshot. Builds newer than latest are marked as untested.
func AddSnapshot(version, latest string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 4 {
		return version
	}
	base := RemoveTimestampFromVersion(version)
	latestParsed, err := ParseVersion(latest)
	if err != nil {
		return base + "-" + SnapshotVersion
	}
	current, err := ParseVersion(base)
	if err == nil && current.Major == latestParsed.Major && current.Minor > latestParsed.Minor {
		return base + "-" + SnapshotUntested
	}
	return base + "-" + SnapshotVersion
}

// ParseVersion parses labelled, snapshot and timestamped version strings.
func ParseVersion(version string) (Version, error) {
	raw := RemoveBracketsFromVersion(version)
	if raw == "" {
		return Version{}, fmt.Errorf("empty UI5 version")
	}
	result := Version{Snapshot: IsSnapshot(raw)}
	parts := strings.Split(stripSnapshot(raw), ".")
	if len(parts) > 3 {
		result.Timestamp = parts[3]
		result.Snapshot = true
	}
	nums := []*int{&result.Major, &result.Minor, &result.Patch}
	for i, target := range nums {
		if i >= len(parts) {
			break
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("invalid UI5 version '%s': segment '%s' is not a number", version, parts[i])
		}
		*target = n
	}
	return result, nil
}

// IsFeatureSupportedVersion reports whether version is at least featureVersion.
// Snapshot versions always support a feature, empty or malformed versions never do.
func IsFeatureSupportedVersion(featureVersion, version string) bool {
	if featureVersion == "" || version == "" {
		return false
	}
	if IsSnapshot(version) {
		return true
	}
	feature, err := semver.NewVersion(featureVersion)
	if err != nil {
		return false
	}
	current, err := semver.NewVersion(RemoveTimestampFromVersion(RemoveBracketsFromVersion(version)))
	if err != nil {
		return false
	}
	return current.Compare(feature) >= 0
}

// GetOfficialBaseUI5VersionURL returns the CDN that serves version.
func GetOfficialBaseUI5VersionURL(version string) string {
	if IsSnapshot(version) {
		return SnapshotCDNURL
	}
	return DefaultCDNURL
}

// CheckSystemVersionPattern returns version when it looks like a UI5 version and "" otherwise.
func CheckSystemVersionPattern(version string) string {
	if systemVersionPattern.MatchString(version) {
		return version
	}
	return ""
}

// GetVersionToBeUsed picks the version to generate with. The latest public
// version replaces an empty version and, in the customer layer, any version
// that is not publicly released.
func GetVersionToBeUsed(version string, isCustomerBase bool, latest string, released []string) string {
	v := RemoveBracketsFromVersion(version)
	if v == "" {
		return latest
	}
	if isCustomerBase && !contains(released, RemoveTimestampFromVersion(v)) {
		return latest
	}
	return v
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
