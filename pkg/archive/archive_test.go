package archive_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tstore/pkg/archive"
	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/observability"
	"github.com/matzehuels/tstore/pkg/registry"
	"github.com/matzehuels/tstore/pkg/registrytest"
)

func TestFileName(t *testing.T) {
	if got := archive.FileName("AuthorX-ModY", "1.0.0"); got != "AuthorX-ModY-1.0.0.zip" {
		t.Errorf("FileName = %q, want %q", got, "AuthorX-ModY-1.0.0.zip")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	path, err := archive.Save(dir, "AuthorX-ModY", "1.0.0", []byte("first version, longer"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(dir, "AuthorX-ModY-1.0.0.zip") {
		t.Errorf("path = %q", path)
	}

	// A second save replaces the file completely.
	if _, err := archive.Save(dir, "AuthorX-ModY", "1.0.0", []byte("second")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestSave_MissingDir(t *testing.T) {
	_, err := archive.Save(filepath.Join(t.TempDir(), "nope"), "A-B", "1.0.0", []byte("x"))
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("err = %v, want IO_ERROR", err)
	}
}

func TestDownload(t *testing.T) {
	srv := registrytest.New(t)
	pkg := srv.AddPackage("AuthorX", "ModY", "1.0.0")
	dir := t.TempDir()

	f := archive.NewFetcher(registry.NewClient(srv.URL))
	path, err := archive.Download(context.Background(), f, dir, pkg)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if filepath.Base(path) != "AuthorX-ModY-1.0.0.zip" {
		t.Errorf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != string(registrytest.ArchiveContent("AuthorX-ModY", "1.0.0")) {
		t.Errorf("content = %q", data)
	}
}

func TestDownload_BadURL(t *testing.T) {
	srv := registrytest.New(t)
	pkg := srv.AddPackage("A", "B", "1.0.0")
	pkg.Latest.DownloadURL = srv.URL + "/package/download/A/B/0.0.1/"

	f := archive.NewFetcher(registry.NewClient(srv.URL))
	_, err := archive.Download(context.Background(), f, t.TempDir(), pkg)
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("err = %v, want NETWORK_ERROR", err)
	}
}

type failingSource struct{}

func (failingSource) GetBytes(context.Context, string) ([]byte, error) {
	return nil, os.ErrDeadlineExceeded
}

func TestFetch_WrapsUncodedErrors(t *testing.T) {
	_, err := archive.NewFetcher(failingSource{}).Fetch(context.Background(), "http://x.invalid/a.zip")
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("err = %v, want NETWORK_ERROR", err)
	}
}

func TestDownloadAll(t *testing.T) {
	srv := registrytest.New(t)
	pkgs := []*registry.Package{
		srv.AddPackage("Other", "Lib", "2.0.0"),
		srv.AddPackage("Me", "Core", "1.1.0"),
		srv.AddPackage("Me", "Modpack", "1.0.0"),
	}
	dir := t.TempDir()

	var reported []string
	f := archive.NewFetcher(registry.NewClient(srv.URL))
	err := archive.DownloadAll(context.Background(), f, dir, pkgs, func(p *registry.Package, path string) {
		reported = append(reported, p.FullName)
	})
	if err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}

	if got := strings.Join(reported, ","); got != "Other-Lib,Me-Core,Me-Modpack" {
		t.Errorf("report order = %s", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("files = %d, want 3", len(entries))
	}
}

func TestDownloadAll_StopsAtFirstFailure(t *testing.T) {
	srv := registrytest.New(t)
	first := srv.AddPackage("A", "One", "1.0.0")
	broken := srv.AddPackage("B", "Two", "1.0.0")
	broken.Latest.DownloadURL = srv.URL + "/package/download/B/Two/missing/"
	third := srv.AddPackage("C", "Three", "1.0.0")
	dir := t.TempDir()

	var reported []string
	f := archive.NewFetcher(registry.NewClient(srv.URL))
	err := archive.DownloadAll(context.Background(), f, dir, []*registry.Package{first, broken, third},
		func(p *registry.Package, _ string) { reported = append(reported, p.FullName) })
	if err == nil {
		t.Fatal("expected an error")
	}

	if len(reported) != 1 || reported[0] != "A-One" {
		t.Errorf("reported = %v, want [A-One]", reported)
	}
	if _, err := os.Stat(filepath.Join(dir, "A-One-1.0.0.zip")); err != nil {
		t.Errorf("earlier archive should remain: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "C-Three-1.0.0.zip")); !os.IsNotExist(err) {
		t.Error("no archive should be written after the failure")
	}
}

type recordingHooks struct {
	observability.NoopArchiveHooks
	saved []string
}

func (h *recordingHooks) OnArchiveSaved(_ context.Context, fullName, _ string, size int, _ time.Duration) {
	if size > 0 {
		h.saved = append(h.saved, fullName)
	}
}

func TestDownload_CallsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetArchiveHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := registrytest.New(t)
	pkg := srv.AddPackage("A", "B", "1.0.0")
	f := archive.NewFetcher(registry.NewClient(srv.URL))
	if _, err := archive.Download(context.Background(), f, t.TempDir(), pkg); err != nil {
		t.Fatal(err)
	}
	if len(hooks.saved) != 1 || hooks.saved[0] != "A-B" {
		t.Errorf("saved = %v", hooks.saved)
	}
}
