package dialog

import (
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/kompisbot/kompis/pkg/ports"
)

// Declarative node type tags.
const (
	NodeTypeOption       = "option"
	NodeTypePostalLookup = "postal_lookup"
)

// flowFile is the on-disk shape of one conversation file: a mapping from
// node ID to a typed definition record.
type flowFile struct {
	Nodes map[string]map[string]any `yaml:"nodes"`
}

// Loader builds declarative nodes from conversation files. Files are loaded
// once at process start; there is no runtime reload.
type Loader struct {
	// Index is handed to postal lookup nodes at construction time.
	Index ports.MunicipalityIndex
}

// Load reads the given conversation files in order and registers every node
// they define. A malformed record (unknown node_type, missing required
// field) is fatal; dangling cross-references are not checked here, that is
// the offline consistency check's job.
func (l *Loader) Load(reg *Registry, paths ...string) error {
	for _, path := range paths {
		if err := l.loadFile(reg, path); err != nil {
			return fmt.Errorf("load conversation file %s: %w", path, err)
		}
	}
	return nil
}

func (l *Loader) loadFile(reg *Registry, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file flowFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	// Map iteration order is random; keep registration (and override
	// behavior within one file) deterministic.
	ids := make([]string, 0, len(file.Nodes))
	for id := range file.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node, err := l.buildNode(id, file.Nodes[id])
		if err != nil {
			return err
		}
		reg.Register(node)
	}
	return nil
}

func (l *Loader) buildNode(id string, record map[string]any) (Node, error) {
	rawType, ok := record["node_type"]
	if !ok {
		return nil, fmt.Errorf("node %q: node_type is required", id)
	}
	nodeType, ok := rawType.(string)
	if !ok {
		return nil, fmt.Errorf("node %q: node_type must be a string, got %T", id, rawType)
	}

	switch nodeType {
	case NodeTypeOption:
		var def OptionDef
		if err := decodeRecord(id, record, &def); err != nil {
			return nil, err
		}
		return NewOptionNode(id, def)

	case NodeTypePostalLookup:
		var def PostalDef
		if err := decodeRecord(id, record, &def); err != nil {
			return nil, err
		}
		return NewPostalLookupNode(id, def, l.Index)

	default:
		return nil, fmt.Errorf("node %q: unknown node_type %q", id, nodeType)
	}
}

func decodeRecord(id string, record map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: false,
	})
	if err != nil {
		return fmt.Errorf("node %q: %w", id, err)
	}
	if err := dec.Decode(record); err != nil {
		return fmt.Errorf("node %q: decode definition: %w", id, err)
	}
	return nil
}
