package strato

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// APIVersion is a microversion of a cloud service API, e.g. "2.27".
type APIVersion struct {
	Major int
	Minor int
}

// ParseAPIVersion parses a version string such as "2.27" or "v2.0".
func ParseAPIVersion(s string) (APIVersion, error) {
	trimmed := strings.TrimPrefix(s, "v")

	majorStr, minorStr, found := strings.Cut(trimmed, ".")
	if !found {
		return APIVersion{}, fmt.Errorf("%w: malformed version %q", ErrInvalidResponse, s)
	}

	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return APIVersion{}, fmt.Errorf("%w: malformed version %q", ErrInvalidResponse, s)
	}

	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return APIVersion{}, fmt.Errorf("%w: malformed version %q", ErrInvalidResponse, s)
	}

	return APIVersion{Major: major, Minor: minor}, nil
}

// String formats the version as "major.minor".
func (v APIVersion) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// Compare returns -1, 0 or 1 ordering v against other.
func (v APIVersion) Compare(other APIVersion) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}

		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}

		return 1
	}

	return 0
}

// LessThan reports whether v orders before other.
func (v APIVersion) LessThan(other APIVersion) bool {
	return v.Compare(other) < 0
}

// IsZero reports whether the version is unset.
func (v APIVersion) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// MarshalJSON encodes the version as a string.
func (v APIVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a version from a string. The empty string decodes to
// the zero version, matching services that send "" for absent versions.
func (v *APIVersion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding API version: %w", err)
	}

	if s == "" {
		*v = APIVersion{}

		return nil
	}

	parsed, err := ParseAPIVersion(s)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// Link is a hypermedia link in a service response.
type Link struct {
	Href string `json:"href" yaml:"href"`
	Rel  string `json:"rel"  yaml:"rel"`
}

// ServiceVersion is one entry of a service's version document.
type ServiceVersion struct {
	ID         APIVersion `json:"id"                    yaml:"id"`
	Links      []Link     `json:"links"                 yaml:"links"`
	Status     string     `json:"status"                yaml:"status"`
	Version    APIVersion `json:"version,omitempty"     yaml:"version,omitempty"`
	MinVersion APIVersion `json:"min_version,omitempty" yaml:"min_version,omitempty"`
}

// versionRoot matches both shapes of a version document: a root listing all
// major versions, or a single version document at a major-version URL.
type versionRoot struct {
	Version  *ServiceVersion  `json:"version"`
	Versions []ServiceVersion `json:"versions"`
}

// ServiceInfo describes a discovered service endpoint.
type ServiceInfo struct {
	// RootURL is the endpoint all request paths are appended to.
	RootURL *url.URL

	// MajorVersion is the major API version of the endpoint.
	MajorVersion APIVersion

	// CurrentVersion is the newest microversion supported, if reported.
	CurrentVersion *APIVersion

	// MinimumVersion is the oldest microversion supported, if reported.
	MinimumVersion *APIVersion
}

// ExtractServiceInfo builds a ServiceInfo from a version document fetched
// from endpoint. When the document lists several major versions, the one
// matching majorVersion is used; majorVersion 0 selects the highest. The
// root URL comes from the "self" link; the link inherits the endpoint's
// https scheme so discovery never downgrades a secure connection.
func ExtractServiceInfo(body []byte, endpoint *url.URL, majorVersion int) (*ServiceInfo, error) {
	var root versionRoot
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: parsing version document: %v", ErrInvalidResponse, err)
	}

	version, err := selectVersion(&root, majorVersion)
	if err != nil {
		return nil, err
	}

	selfLink := ""

	for _, link := range version.Links {
		if link.Rel == "self" {
			selfLink = link.Href

			break
		}
	}

	if selfLink == "" {
		return nil, fmt.Errorf("%w: version document has no self link", ErrInvalidResponse)
	}

	rootURL, err := url.Parse(selfLink)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed self link %q", ErrInvalidResponse, selfLink)
	}

	if endpoint != nil && endpoint.Scheme == "https" {
		rootURL.Scheme = "https"
	}

	info := &ServiceInfo{
		RootURL:      rootURL,
		MajorVersion: version.ID,
	}

	if !version.Version.IsZero() {
		current := version.Version
		info.CurrentVersion = &current
	}

	if !version.MinVersion.IsZero() {
		minimum := version.MinVersion
		info.MinimumVersion = &minimum
	}

	return info, nil
}

func selectVersion(root *versionRoot, majorVersion int) (*ServiceVersion, error) {
	if root.Version != nil {
		return root.Version, nil
	}

	if len(root.Versions) == 0 {
		return nil, fmt.Errorf("%w: version document lists no versions", ErrInvalidResponse)
	}

	var best *ServiceVersion

	for i := range root.Versions {
		candidate := &root.Versions[i]
		if majorVersion > 0 {
			if candidate.ID.Major == majorVersion {
				return candidate, nil
			}

			continue
		}

		if best == nil || best.ID.LessThan(candidate.ID) {
			best = candidate
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no version with major version %d", ErrEndpointNotFound, majorVersion)
	}

	return best, nil
}

// VersionSelector expresses which microversion to negotiate.
type VersionSelector struct {
	kind    versionSelectorKind
	exact   APIVersion
	choices []APIVersion
}

type versionSelectorKind int

const (
	selectLatest versionSelectorKind = iota
	selectMinimum
	selectExact
	selectChoice
)

// LatestVersion selects the newest microversion the service supports.
func LatestVersion() VersionSelector {
	return VersionSelector{kind: selectLatest}
}

// MinimumVersion selects the oldest microversion the service supports.
func MinimumVersion() VersionSelector {
	return VersionSelector{kind: selectMinimum}
}

// ExactVersion selects one specific microversion; negotiation fails if the
// service does not support it.
func ExactVersion(v APIVersion) VersionSelector {
	return VersionSelector{kind: selectExact, exact: v}
}

// VersionChoice selects the best match out of several acceptable
// microversions.
func VersionChoice(versions ...APIVersion) VersionSelector {
	return VersionSelector{kind: selectChoice, choices: versions}
}

// IsRequired reports whether a failed match is an error. Latest and Minimum
// fall back to unversioned requests when the service advertises no
// microversions; Exact and VersionChoice must match.
func (s VersionSelector) IsRequired() bool {
	return s.kind == selectExact || s.kind == selectChoice
}

// PickVersion applies a selector against the advertised version range. The
// second return value is false when no version satisfies the selector.
func (info *ServiceInfo) PickVersion(selector VersionSelector) (APIVersion, bool) {
	switch selector.kind {
	case selectLatest:
		if info.CurrentVersion != nil {
			return *info.CurrentVersion, true
		}

	case selectMinimum:
		if info.MinimumVersion != nil {
			return *info.MinimumVersion, true
		}

	case selectExact:
		if info.supports(selector.exact) {
			return selector.exact, true
		}

	case selectChoice:
		return info.pickFromChoices(selector.choices)
	}

	return APIVersion{}, false
}

// supports reports whether one specific microversion falls into the
// advertised range. Without a minimum version only the current version
// itself is considered supported.
func (info *ServiceInfo) supports(v APIVersion) bool {
	if info.CurrentVersion == nil {
		return false
	}

	if info.MinimumVersion == nil {
		return v.Compare(*info.CurrentVersion) == 0
	}

	return !v.LessThan(*info.MinimumVersion) && !info.CurrentVersion.LessThan(v)
}

func (info *ServiceInfo) pickFromChoices(choices []APIVersion) (APIVersion, bool) {
	var (
		best  APIVersion
		found bool
	)

	for _, choice := range choices {
		if !info.supports(choice) {
			continue
		}

		if !found || best.LessThan(choice) {
			best = choice
			found = true
		}
	}

	return best, found
}
