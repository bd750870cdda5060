package archive

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/observability"
	"github.com/matzehuels/tstore/pkg/registry"
)

// Source returns the body of a GET on an absolute URL.
// [registry.Client] implements it.
type Source interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// Fetcher downloads archive bytes from download URLs.
type Fetcher struct {
	src Source
}

// NewFetcher creates a Fetcher that reads through src.
func NewFetcher(src Source) *Fetcher {
	return &Fetcher{src: src}
}

// Fetch downloads the archive at url. Transport failures and non-200
// responses are NETWORK_ERROR.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.src.GetBytes(ctx, url)
	if err != nil {
		if errors.GetCode(err) == "" {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "download %s", url)
		}
		return nil, err
	}
	return data, nil
}

// FileName returns the on-disk name of an archive: "{fullName}-{version}.zip".
func FileName(fullName, version string) string {
	return fullName + "-" + version + ".zip"
}

// Save writes data to dir/FileName(fullName, version), creating or
// truncating the file, and returns its path.
func Save(dir, fullName, version string, data []byte) (string, error) {
	path := filepath.Join(dir, FileName(fullName, version))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return path, nil
}

// Download fetches the latest archive of pkg and saves it in dir.
func Download(ctx context.Context, f *Fetcher, dir string, pkg *registry.Package) (string, error) {
	start := time.Now()
	data, err := f.Fetch(ctx, pkg.Latest.DownloadURL)
	if err != nil {
		return "", err
	}
	path, err := Save(dir, pkg.FullName, pkg.Latest.VersionNumber, data)
	if err != nil {
		return "", err
	}
	observability.Archive().OnArchiveSaved(ctx, pkg.FullName, path, len(data), time.Since(start))
	return path, nil
}

// DownloadAll downloads every package in pkgs, in order, into dir.
// report, if non-nil, is called after each archive is saved. The first
// failure is returned and no further packages are attempted.
func DownloadAll(ctx context.Context, f *Fetcher, dir string, pkgs []*registry.Package, report func(pkg *registry.Package, path string)) error {
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := Download(ctx, f, dir, pkg)
		if err != nil {
			return err
		}
		if report != nil {
			report(pkg, path)
		}
	}
	return nil
}
