package deps

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/tstore/pkg/errors"
)

// Identity identifies a package independent of version. Two identities are
// equal iff both fields match exactly.
type Identity struct {
	Namespace string
	Name      string
}

// String returns the full name, "namespace-name".
func (id Identity) String() string { return id.Namespace + "-" + id.Name }

// Reference is a parsed dependency reference string.
//
// Only Identity takes part in resolution; the registry always serves the
// latest version. Version keeps the trailing segment as written and Semver
// holds its parsed form when it is a valid version.
type Reference struct {
	Identity
	Version string          // "" when the reference has no version segment
	Semver  *semver.Version // nil when Version is empty or not a valid version
	Raw     string
}

// ParseReference splits a "namespace-name[-version]" reference on '-'.
// The first two segments are the namespace and name; everything after the
// second hyphen is the version. A reference with fewer than two non-empty
// segments is an INVALID_REFERENCE error.
func ParseReference(s string) (Reference, error) {
	segs := strings.Split(s, "-")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return Reference{}, errors.New(errors.ErrCodeInvalidReference, "invalid dependency reference %q: want namespace-name[-version]", s)
	}

	ref := Reference{
		Identity: Identity{Namespace: segs[0], Name: segs[1]},
		Version:  strings.Join(segs[2:], "-"),
		Raw:      s,
	}
	if ref.Version != "" {
		if v, err := semver.NewVersion(ref.Version); err == nil {
			ref.Semver = v
		}
	}
	return ref, nil
}

// Differs reports whether the referenced version is known and differs from
// version. Both are compared as semantic versions when they parse, and as
// strings otherwise.
func (r Reference) Differs(version string) bool {
	if r.Version == "" {
		return false
	}
	if r.Semver != nil {
		if v, err := semver.NewVersion(version); err == nil {
			return !r.Semver.Equal(v)
		}
	}
	return r.Version != version
}
