// Package archive downloads package archives and writes them to disk.
//
// Archives are opaque bytes: they are neither unpacked nor verified. Each
// archive is written as "{full_name}-{version}.zip" in the target directory,
// replacing any existing file with that name.
//
// [DownloadAll] processes a resolved package list in order, one archive at a
// time, and stops at the first failure. Files already written stay on disk.
package archive
