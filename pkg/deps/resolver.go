package deps

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/observability"
	"github.com/matzehuels/tstore/pkg/registry"
)

// FetchFunc retrieves metadata for author/name. It is normally
// [registry.Client.FetchPackage] bound to a fixed registry.
type FetchFunc func(ctx context.Context, author, name string) (*registry.Package, error)

// Fetcher is implemented by registry clients.
type Fetcher interface {
	FetchPackage(ctx context.Context, author, name string) (*registry.Package, error)
}

// Options configures dependency resolution.
type Options struct {
	Logger func(string, ...any) // Debug progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolver binds a Fetcher to [Resolve].
type Resolver struct {
	fetcher Fetcher
	opts    Options
}

// NewResolver creates a Resolver that fetches metadata through f.
func NewResolver(f Fetcher, opts Options) *Resolver {
	return &Resolver{fetcher: f, opts: opts}
}

// Resolve fetches author/name and resolves its dependency closure.
func (r *Resolver) Resolve(ctx context.Context, author, name string) (*ResolvedSet, error) {
	root, err := r.fetcher.FetchPackage(ctx, author, name)
	if err != nil {
		return nil, err
	}
	return Resolve(ctx, root, r.fetcher.FetchPackage, r.opts)
}

// frame is one package on the current path together with the index of its
// next unprocessed dependency reference.
type frame struct {
	pkg  *registry.Package
	next int
}

// Resolve computes the dependency closure of root.
//
// The walk is depth-first over an explicit stack. References are processed
// in declaration order, one fetch at a time; a package is appended to the
// result after all of its references have been processed. Packages whose
// full name is already in the result are not appended again.
//
// Returns:
//   - the resolved set, root included, on success
//   - INVALID_REFERENCE if a reference has fewer than two segments
//   - [errors.CycleError] if a reference leads back to a package on the
//     current path
//   - any error from fetch, unchanged
func Resolve(ctx context.Context, root *registry.Package, fetch FetchFunc, opts Options) (*ResolvedSet, error) {
	opts = opts.WithDefaults()
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, root.FullName)
	start := time.Now()

	set, err := walk(ctx, root, fetch, opts)

	count := 0
	if set != nil {
		count = set.Len()
	}
	hooks.OnResolveComplete(ctx, root.FullName, count, time.Since(start), err)
	return set, err
}

func walk(ctx context.Context, root *registry.Package, fetch FetchFunc, opts Options) (*ResolvedSet, error) {
	set := NewResolvedSet()
	visiting := map[string]bool{root.FullName: true}
	stack := []*frame{{pkg: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		refs := top.pkg.Latest.Dependencies

		if top.next == len(refs) {
			stack = stack[:len(stack)-1]
			delete(visiting, top.pkg.FullName)
			if set.Add(top.pkg) {
				opts.Logger("resolved %s %s", top.pkg.FullName, top.pkg.Latest.VersionNumber)
			}
			continue
		}

		raw := refs[top.next]
		top.next++

		ref, err := ParseReference(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", top.pkg.FullName, err)
		}
		if visiting[ref.String()] {
			return nil, cycleError(stack, ref.String())
		}

		opts.Logger("fetching %s (required by %s)", ref, top.pkg.FullName)
		dep, err := fetch(ctx, ref.Namespace, ref.Name)
		if err != nil {
			return nil, err
		}
		if visiting[dep.FullName] {
			return nil, cycleError(stack, dep.FullName)
		}
		if ref.Differs(dep.Latest.VersionNumber) {
			opts.Logger("%s requires %s %s, using latest %s", top.pkg.FullName, ref, ref.Version, dep.Latest.VersionNumber)
		}

		visiting[dep.FullName] = true
		stack = append(stack, &frame{pkg: dep})
	}

	return set, nil
}

func cycleError(stack []*frame, repeated string) *errors.CycleError {
	path := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		path = append(path, f.pkg.FullName)
	}
	return &errors.CycleError{Path: append(path, repeated)}
}
