package registry

import "encoding/json"

// Package is a registry package as returned by the metadata endpoint.
//
// Field names and JSON tags follow the registry schema so that a decoded
// Package re-encodes to the same shape. A Package is immutable after
// decoding and is safe for concurrent reads.
type Package struct {
	Namespace         string             `json:"namespace"`
	Name              string             `json:"name"`
	FullName          string             `json:"full_name"` // "namespace-name"
	Owner             string             `json:"owner"`
	PackageURL        string             `json:"package_url"`
	DateCreated       string             `json:"date_created"`
	DateUpdated       string             `json:"date_updated"`
	RatingScore       int                `json:"rating_score"`
	IsPinned          bool               `json:"is_pinned"`
	IsDeprecated      bool               `json:"is_deprecated"`
	TotalDownloads    int                `json:"total_downloads"`
	Latest            Version            `json:"latest"`
	CommunityListings []CommunityListing `json:"community_listings"`
}

// Version is the latest version of a package at fetch time.
type Version struct {
	Namespace     string   `json:"namespace"`
	Name          string   `json:"name"`
	VersionNumber string   `json:"version_number"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	Dependencies  []string `json:"dependencies"` // "namespace-name[-version]"
	DownloadURL   string   `json:"download_url"`
	Downloads     int      `json:"downloads"`
	DateCreated   string   `json:"date_created"`
	WebsiteURL    string   `json:"website_url"`
	IsActive      bool     `json:"is_active"`
}

// CommunityListing describes a package's listing in one community.
type CommunityListing struct {
	HasNSFWContent bool     `json:"has_nsfw_content"`
	Categories     []string `json:"categories"`
	Community      string   `json:"community"`
}

// UploadResult is the registry's response to a successful upload.
// Raw holds the full response body for display.
type UploadResult struct {
	Namespace     string          `json:"namespace"`
	Name          string          `json:"name"`
	VersionNumber string          `json:"version_number,omitempty"`
	FullName      string          `json:"full_name,omitempty"`
	Raw           json.RawMessage `json:"-"`
}
