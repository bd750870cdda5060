package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/tstore/pkg/errors"
)

// packageResponse mirrors the registry schema with pointer fields so that
// absent required fields can be told apart from zero values.
type packageResponse struct {
	Namespace         *string            `json:"namespace"`
	Name              *string            `json:"name"`
	FullName          *string            `json:"full_name"`
	Owner             string             `json:"owner"`
	PackageURL        string             `json:"package_url"`
	DateCreated       string             `json:"date_created"`
	DateUpdated       string             `json:"date_updated"`
	RatingScore       int                `json:"rating_score"`
	IsPinned          bool               `json:"is_pinned"`
	IsDeprecated      bool               `json:"is_deprecated"`
	TotalDownloads    int                `json:"total_downloads"`
	Latest            *versionResponse   `json:"latest"`
	CommunityListings []CommunityListing `json:"community_listings"`
}

type versionResponse struct {
	Namespace     string    `json:"namespace"`
	Name          string    `json:"name"`
	VersionNumber *string   `json:"version_number"`
	FullName      *string   `json:"full_name"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Dependencies  *[]string `json:"dependencies"`
	DownloadURL   *string   `json:"download_url"`
	Downloads     int       `json:"downloads"`
	DateCreated   string    `json:"date_created"`
	WebsiteURL    string    `json:"website_url"`
	IsActive      bool      `json:"is_active"`
}

// DecodePackage decodes a metadata response body into a Package.
//
// Returns a PARSE_ERROR if the body is not valid JSON, if a field has the
// wrong type, or if any required field is missing. Required fields are
// namespace, name, full_name and latest, and within latest: version_number,
// full_name, download_url and dependencies (which may be empty).
func DecodePackage(data []byte) (*Package, error) {
	var raw packageResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode package metadata")
	}

	var missing []string
	need := func(field string, ok bool) {
		if !ok {
			missing = append(missing, field)
		}
	}
	need("namespace", raw.Namespace != nil)
	need("name", raw.Name != nil)
	need("full_name", raw.FullName != nil)
	need("latest", raw.Latest != nil)
	if raw.Latest != nil {
		need("latest.version_number", raw.Latest.VersionNumber != nil)
		need("latest.full_name", raw.Latest.FullName != nil)
		need("latest.download_url", raw.Latest.DownloadURL != nil)
		need("latest.dependencies", raw.Latest.Dependencies != nil)
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeParse, "package metadata missing required fields: %s", strings.Join(missing, ", "))
	}
	if *raw.FullName == "" {
		return nil, errors.New(errors.ErrCodeParse, "package metadata has empty full_name")
	}

	v := raw.Latest
	return &Package{
		Namespace:      *raw.Namespace,
		Name:           *raw.Name,
		FullName:       *raw.FullName,
		Owner:          raw.Owner,
		PackageURL:     raw.PackageURL,
		DateCreated:    raw.DateCreated,
		DateUpdated:    raw.DateUpdated,
		RatingScore:    raw.RatingScore,
		IsPinned:       raw.IsPinned,
		IsDeprecated:   raw.IsDeprecated,
		TotalDownloads: raw.TotalDownloads,
		Latest: Version{
			Namespace:     v.Namespace,
			Name:          v.Name,
			VersionNumber: *v.VersionNumber,
			FullName:      *v.FullName,
			Description:   v.Description,
			Icon:          v.Icon,
			Dependencies:  *v.Dependencies,
			DownloadURL:   *v.DownloadURL,
			Downloads:     v.Downloads,
			DateCreated:   v.DateCreated,
			WebsiteURL:    v.WebsiteURL,
			IsActive:      v.IsActive,
		},
		CommunityListings: raw.CommunityListings,
	}, nil
}

// DecodeUploadResult decodes an upload response body. namespace and name
// are required.
func DecodeUploadResult(data []byte) (*UploadResult, error) {
	var res UploadResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode upload response")
	}
	if res.Namespace == "" || res.Name == "" {
		return nil, errors.New(errors.ErrCodeParse, "upload response missing namespace or name: %s", truncate(string(data), 200))
	}
	res.Raw = json.RawMessage(data)
	return &res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:n], len(s))
}
