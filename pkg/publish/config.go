package publish

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tstore/pkg/errors"
)

// DefaultConfigPath is the config file read when none is given.
const DefaultConfigPath = "publish.toml"

// Config holds the values read from a config file. A nil field means the
// key was not present.
type Config struct {
	Author      *string  `toml:"author"`
	Categories  []string `toml:"categories"`
	Communities []string `toml:"communities"`
	NSFW        *bool    `toml:"nsfw"`
	Zip         *string  `toml:"zip"`
	Token       *string  `toml:"token"`

	// Unknown lists keys in the file that match no field.
	Unknown []string `toml:"-"`
}

// LoadConfig reads the config file at path.
//
// A file that does not exist is not an error: LoadConfig returns (nil, nil).
// A file that exists but cannot be read or parsed is INVALID_CONFIG.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes TOML config data. name is used in error messages.
func ParseConfig(name string, data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", name)
	}
	for _, key := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	sort.Strings(cfg.Unknown)
	return &cfg, nil
}
