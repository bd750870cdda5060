package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches registry namespaces and package names. The
// registry allows letters, digits and underscores; hyphens separate the
// namespace from the name in full names and dependency references.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidatePackageName validates an author (namespace) or package name before
// it is placed in a request path or a local filename.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
//   - Only letters, digits and underscores
//
// kind names the argument in the error message ("author", "package name").
func ValidatePackageName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "%s cannot be empty", kind)
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidPackage, "%s too long (max 128 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "%s contains invalid control characters", kind)
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid %s %q: only letters, digits and underscores are allowed", kind, name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// domainRegex matches a single DNS label.
var domainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidateDomain validates a registry subdomain such as "valheim".
func ValidateDomain(domain string) error {
	if !domainRegex.MatchString(domain) {
		return New(ErrCodeInvalidInput, "invalid registry subdomain %q", domain)
	}
	return nil
}
