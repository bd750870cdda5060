package registry

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultHost is the public registry host.
const DefaultHost = "thunderstore.io"

// BaseURL returns the registry base URL for an optional subdomain.
// An empty domain selects the public host.
func BaseURL(domain string) string {
	if domain == "" {
		return "https://" + DefaultHost
	}
	return fmt.Sprintf("https://%s.%s", domain, DefaultHost)
}

// PackageURL returns the metadata endpoint for author/name.
func PackageURL(base, author, name string) string {
	return fmt.Sprintf("%s/experimental/package/%s/%s/", trimBase(base), url.PathEscape(author), url.PathEscape(name))
}

// UploadURL returns the upload endpoint.
func UploadURL(base string) string {
	return trimBase(base) + "/experimental/package/upload/"
}

func trimBase(base string) string { return strings.TrimSuffix(base, "/") }
