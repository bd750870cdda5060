package publish

import (
	"encoding/json"

	"github.com/matzehuels/tstore/pkg/errors"
)

// Flags holds the options given on the command line. A nil field means the
// option was not given.
type Flags struct {
	Author      *string
	Categories  []string // nil when not given
	Communities []string // nil when not given
	NSFW        bool
	Zip         *string
	Token       *string
}

// Options are fully resolved upload options.
type Options struct {
	Author      string
	Categories  []string
	Communities []string
	NSFW        bool
	Archive     string
	Token       string
}

// Metadata is the JSON document sent in the "metadata" part of an upload.
type Metadata struct {
	AuthorName     string   `json:"author_name"`
	Categories     []string `json:"categories"`
	Communities    []string `json:"communities"`
	HasNSFWContent bool     `json:"has_nsfw_content"`
}

// Resolve merges command-line flags with an optional config file.
//
// Rules per field:
//   - author, communities, token: flag, else config, else MissingFieldError
//   - categories: flag, else config, else empty
//   - nsfw: flag OR config
//   - zip: flag, else the config path if exists reports that it exists,
//     else MissingFieldError
//
// cfg may be nil. exists is only consulted for the config zip path.
func Resolve(flags Flags, cfg *Config, exists func(path string) bool) (Options, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	var opts Options

	author := firstString(flags.Author, cfg.Author)
	if author == "" {
		return Options{}, &errors.MissingFieldError{Field: "author"}
	}
	opts.Author = author

	opts.Communities = firstList(flags.Communities, cfg.Communities)
	if len(opts.Communities) == 0 {
		return Options{}, &errors.MissingFieldError{Field: "communities"}
	}

	opts.Categories = firstList(flags.Categories, cfg.Categories)
	if opts.Categories == nil {
		opts.Categories = []string{}
	}

	opts.NSFW = flags.NSFW || (cfg.NSFW != nil && *cfg.NSFW)

	switch {
	case flags.Zip != nil && *flags.Zip != "":
		opts.Archive = *flags.Zip
	case cfg.Zip != nil && *cfg.Zip != "" && exists != nil && exists(*cfg.Zip):
		opts.Archive = *cfg.Zip
	default:
		return Options{}, &errors.MissingFieldError{Field: "zip"}
	}

	token := firstString(flags.Token, cfg.Token)
	if token == "" {
		return Options{}, &errors.MissingFieldError{Field: "token"}
	}
	opts.Token = token

	return opts, nil
}

// Metadata returns the upload metadata for o.
func (o Options) Metadata() Metadata {
	categories := o.Categories
	if categories == nil {
		categories = []string{}
	}
	return Metadata{
		AuthorName:     o.Author,
		Categories:     categories,
		Communities:    o.Communities,
		HasNSFWContent: o.NSFW,
	}
}

// MetadataJSON returns the encoded upload metadata for o.
func (o Options) MetadataJSON() ([]byte, error) {
	return json.Marshal(o.Metadata())
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func firstList(vals ...[]string) []string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
