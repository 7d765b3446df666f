package link

import (
	"fmt"

	"github.com/adrg/xdg"
	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/pelletier/go-toml/v2"
)

const profileName = "lnwrap/defaults.toml"

// Profile is the on-disk form of the default options applied by the command
// line tool.
type Profile struct {
	Options Options `toml:"ln"`
}

// DefaultProfilePath returns the profile location under the XDG config
// directory. The file is not required to exist.
func DefaultProfilePath() filesystem.Path {
	return filesystem.Path(xdg.ConfigHome).Join(profileName)
}

// LoadProfile reads the options stored at path. A missing file yields empty
// options.
func LoadProfile(path filesystem.Path) (*Options, error) {
	exists, err := path.Exists()
	if err != nil {
		return nil, err
	}

	if !exists {
		return &Options{}, nil
	}

	f, err := path.Open()
	if err != nil {
		return nil, err
	}

	defer f.Close()

	var p Profile
	decoder := toml.NewDecoder(f).DisallowUnknownFields()
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("link: profile %s: %w", path, err)
	}

	return &p.Options, nil
}

// WriteProfile stores opts at path, creating parent directories.
func WriteProfile(path filesystem.Path, opts *Options) error {
	data, err := toml.Marshal(Profile{Options: *opts})
	if err != nil {
		return err
	}

	if err := path.Parent().MkdirAll(0755); err != nil {
		return err
	}

	return path.WriteFile(data, 0644)
}
