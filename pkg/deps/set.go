package deps

import "github.com/matzehuels/tstore/pkg/registry"

// ResolvedSet is an ordered collection of packages with no two entries
// sharing a full name. The zero value is not usable; use [NewResolvedSet].
type ResolvedSet struct {
	pkgs  []*registry.Package
	index map[string]struct{}
}

// NewResolvedSet returns an empty set.
func NewResolvedSet() *ResolvedSet {
	return &ResolvedSet{index: make(map[string]struct{})}
}

// Add appends pkg unless a package with the same full name is already
// present. It reports whether pkg was added.
func (s *ResolvedSet) Add(pkg *registry.Package) bool {
	if s.Contains(pkg.FullName) {
		return false
	}
	s.index[pkg.FullName] = struct{}{}
	s.pkgs = append(s.pkgs, pkg)
	return true
}

// Contains reports whether a package with fullName is in the set.
func (s *ResolvedSet) Contains(fullName string) bool {
	_, ok := s.index[fullName]
	return ok
}

// Len returns the number of packages.
func (s *ResolvedSet) Len() int { return len(s.pkgs) }

// Packages returns the packages in insertion order. The returned slice is a
// copy; the packages are shared.
func (s *ResolvedSet) Packages() []*registry.Package {
	return append([]*registry.Package(nil), s.pkgs...)
}

// FullNames returns the full names in insertion order.
func (s *ResolvedSet) FullNames() []string {
	names := make([]string, len(s.pkgs))
	for i, p := range s.pkgs {
		names[i] = p.FullName
	}
	return names
}
