package capability

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// familyDoc is the on-disk shape of one family definition, in the same
// yaml-tag style the rest of the framework uses for its config/cli
// file formats.
type familyDoc struct {
	Name         string   `yaml:"name"`
	Capabilities []string `yaml:"capabilities"`
}

// familiesDoc is the on-disk shape of a capability-family file: a list
// of families, each an ordered list of capability names. Ordinals are
// assigned by list position, so reordering the yaml changes the wire
// representation of any bitset already persisted against it.
type familiesDoc struct {
	Families []familyDoc `yaml:"families"`
}

// LoadFamiliesFile reads a yaml file at path and builds one sealed
// Family per entry, keyed by family name. A duplicate capability name
// within a family is a ConfigurationError, matching Builder.Add.
func LoadFamiliesFile(path string) (map[string]*Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capability families file: %w", err)
	}
	defer f.Close()

	return LoadFamilies(f)
}

// LoadFamilies is LoadFamiliesFile's io.Reader-based counterpart, so
// callers can load from any source (embedded file, config map, test
// fixture) without touching the filesystem.
func LoadFamilies(r io.Reader) (map[string]*Family, error) {
	var doc familiesDoc
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode capability families yaml: %w", err)
	}

	out := make(map[string]*Family, len(doc.Families))
	for _, fd := range doc.Families {
		if fd.Name == "" {
			return nil, newError(KindConfiguration, "capability family entry is missing a name")
		}
		if _, dup := out[fd.Name]; dup {
			return nil, newError(KindConfiguration, fmt.Sprintf("duplicate capability family name %q", fd.Name))
		}

		b := NewBuilder(fd.Name)
		for _, c := range fd.Capabilities {
			if err := b.Add(c); err != nil {
				return nil, err
			}
		}
		out[fd.Name] = b.Seal()
	}

	return out, nil
}
