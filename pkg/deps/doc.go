// Package deps resolves the dependency closure of a registry package.
//
// # Overview
//
// Every registry package declares the dependencies of its latest version as
// reference strings of the form "namespace-name[-version]". [Resolve] walks
// those references depth-first, fetching metadata for each one, and returns
// a [ResolvedSet]: one entry per unique full name reachable from the root,
// the root included.
//
// # Ordering
//
// Entries are appended in post-order: a package is added only after all of
// its dependencies have been resolved, so dependencies come before the
// packages that need them.
//
// # Diamonds and Cycles
//
// A dependency shared by several packages is fetched once per reference
// path but appears in the set once. A reference back to a package that is
// still on the current path fails with an [errors.CycleError] instead of
// recursing forever.
//
// # Failure
//
// Any fetch error aborts the walk. The error is returned unchanged and no
// partial set is produced.
//
// [errors.CycleError]: github.com/matzehuels/tstore/pkg/errors.CycleError
package deps
