package manifest

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// PackageDescriptor is the subset of an add-on package's package.json the
// scaffolder reads.
type PackageDescriptor struct {
	Name    string
	Version string

	// Meta is the "webStarter" block, nil when the package has none.
	Meta *ScaffoldMeta
}

// ScaffoldMeta is the catalog metadata an add-on package declares for itself.
// Empty fields are filled with defaults by discovery.
type ScaffoldMeta struct {
	Category string
	Name     string
	Label    string
	Value    string
}

// AddonManifest is the declarative form of an add-on (addon.yaml).
type AddonManifest struct {
	Name            string         `yaml:"name"`
	Description     string         `yaml:"description,omitempty"`
	Defaults        OrderedMap     `yaml:"defaults,omitempty"`
	Prompts         []PromptSpec   `yaml:"prompts,omitempty"`
	Plugins         OrderedMap     `yaml:"plugins,omitempty"`
	DevDependencies OrderedStrings `yaml:"devDependencies,omitempty"`

	// Templates is a directory, relative to the manifest, whose files are
	// rendered with the answers into the project destination.
	Templates string `yaml:"templates,omitempty"`
}

// PromptSpec declares one question an add-on asks.
type PromptSpec struct {
	Type    string       `yaml:"type"`
	Name    string       `yaml:"name"`
	Message string       `yaml:"message"`
	Default any          `yaml:"default,omitempty"`
	Choices []ChoiceSpec `yaml:"choices,omitempty"`

	// When lists conditions that must all hold for the question to be asked.
	When []Condition `yaml:"when,omitempty"`
}

// ChoiceSpec is one option of a list or checkbox question.
type ChoiceSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Condition compares a previously collected answer. With Equals unset the
// answer only has to be truthy.
type Condition struct {
	Answer string `yaml:"answer"`
	Equals any    `yaml:"equals,omitempty"`
}

// KeyValue is one entry of an ordered mapping.
type KeyValue[V any] struct {
	Key   string
	Value V
}

// OrderedMap is a YAML mapping decoded in document order.
type OrderedMap []KeyValue[any]

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *OrderedMap) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeOrdered[any](node)
	if err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m OrderedMap) MarshalYAML() (interface{}, error) {
	return encodeOrdered(m)
}

// OrderedStrings is a YAML mapping of string values decoded in document order.
type OrderedStrings []KeyValue[string]

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *OrderedStrings) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeOrdered[string](node)
	if err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m OrderedStrings) MarshalYAML() (interface{}, error) {
	return encodeOrdered(m)
}

func decodeOrdered[V any](node *yaml.Node) ([]KeyValue[V], error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	out := make([]KeyValue[V], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Content[i+1].Line, err)
		}
		out = append(out, KeyValue[V]{Key: node.Content[i].Value, Value: v})
	}
	return out, nil
}

func encodeOrdered[V any](entries []KeyValue[V]) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range entries {
		var val yaml.Node
		if err := val.Encode(kv.Value); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: kv.Key}, &val)
	}
	return n, nil
}
