package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// taxonomyFile is the on-disk shape of .gid/taxonomy.yaml. Both lists are
// YAML sequences so file order is preserved, matching the in-memory
// ordering contract.
type taxonomyFile struct {
	Projects   []Entry `yaml:"projects"`
	Components []Entry `yaml:"components"`
}

// Load returns the built-in taxonomy extended with entries from the given
// YAML file. File entries are prepended so workspace-local mappings take
// priority over the built-ins. A missing file yields the default taxonomy.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from workspace metadata
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}

	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}

	for i, e := range tf.Projects {
		if e.Match == "" || e.Code == "" {
			return nil, fmt.Errorf("taxonomy %s: projects[%d] needs both match and code", path, i)
		}
	}
	for i, e := range tf.Components {
		if e.Match == "" || e.Code == "" {
			return nil, fmt.Errorf("taxonomy %s: components[%d] needs both match and code", path, i)
		}
	}

	return &Taxonomy{
		projects:   append(append([]Entry{}, tf.Projects...), projectTable...),
		components: append(append([]Entry{}, tf.Components...), componentTable...),
	}, nil
}
