package predict

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

// Kind selects how a model evaluates a feature vector.
type Kind string

const (
	// KindLinear is intercept + sum(coefficient * feature).
	KindLinear Kind = "linear"
	// KindForest averages the outputs of a set of regression trees.
	KindForest Kind = "forest"
)

// Node is one node of a regression tree. A node with an empty Feature is a
// leaf and returns Value; otherwise samples with feature <= Threshold go to
// Left and the rest to Right. Child indices always point forward in the node
// list, so evaluation terminates.
type Node struct {
	Feature   string  `yaml:"feature,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
	Left      int     `yaml:"left,omitempty"`
	Right     int     `yaml:"right,omitempty"`
	Value     float64 `yaml:"value,omitempty"`
}

// Tree is a flat list of nodes rooted at index 0.
type Tree struct {
	Nodes []Node `yaml:"nodes"`
}

// Model is a pre-trained regressor read from a YAML or JSON artifact.
type Model struct {
	Name         string             `yaml:"name"`
	Kind         Kind               `yaml:"kind"`
	FeatureNames []string           `yaml:"feature_names"`
	Intercept    float64            `yaml:"intercept,omitempty"`
	Coefficients map[string]float64 `yaml:"coefficients,omitempty"`
	Trees        []Tree             `yaml:"trees,omitempty"`
}

// LoadModel reads and validates the artifact at path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes and validates a model artifact. JSON is accepted as it
// is a subset of YAML.
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = string(m.Kind)
	}
	return &m, nil
}

func (m *Model) validate() error {
	if len(m.FeatureNames) == 0 {
		return fmt.Errorf("model declares no feature_names")
	}

	known := make(map[string]struct{}, len(m.FeatureNames))
	for _, name := range m.FeatureNames {
		if name == "" {
			return fmt.Errorf("model declares an empty feature name")
		}
		if _, dup := known[name]; dup {
			return fmt.Errorf("feature %q declared twice", name)
		}
		known[name] = struct{}{}
	}

	switch m.Kind {
	case KindLinear:
		for name := range m.Coefficients {
			if _, ok := known[name]; !ok {
				return fmt.Errorf("coefficient for undeclared feature %q", name)
			}
		}
	case KindForest:
		if len(m.Trees) == 0 {
			return fmt.Errorf("forest model has no trees")
		}
		for i, tree := range m.Trees {
			if err := tree.validate(known); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unsupported model kind %q", m.Kind)
	}

	return nil
}

func (t Tree) validate(known map[string]struct{}) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, n := range t.Nodes {
		if n.Feature == "" {
			continue
		}
		if _, ok := known[n.Feature]; !ok {
			return fmt.Errorf("node %d splits on undeclared feature %q", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has children out of range", i)
		}
	}
	return nil
}

// evaluate assumes features holds every declared feature.
func (m *Model) evaluate(features map[string]float64) float64 {
	switch m.Kind {
	case KindForest:
		var total float64
		for _, tree := range m.Trees {
			total += tree.evaluate(features)
		}
		return total / float64(len(m.Trees))
	default:
		y := m.Intercept
		for _, name := range m.FeatureNames {
			y += m.Coefficients[name] * features[name]
		}
		return y
	}
}

func (t Tree) evaluate(features map[string]float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature == "" {
			return n.Value
		}
		if v := features[n.Feature]; v <= n.Threshold || math.IsNaN(v) {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
