package artifact

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultCrops is the label encoding the shipped classifier was fit with
var defaultCrops = map[int]string{
	1: "Rice", 2: "Maize", 3: "Jute", 4: "Cotton", 5: "Coconut", 6: "Papaya", 7: "Orange",
	8: "Apple", 9: "Muskmelon", 10: "Watermelon", 11: "Grapes", 12: "Mango", 13: "Banana",
	14: "Pomegranate", 15: "Lentil", 16: "Blackgram", 17: "Mungbean", 18: "Mothbeans",
	19: "Pigeonpeas", 20: "Kidneybeans", 21: "Chickpea", 22: "Coffee",
}

// LabelTable maps classifier class ids to crop names. It is never mutated after construction.
type LabelTable struct {
	names map[int]string
}

// DefaultLabels returns the built-in 22 crop table
func DefaultLabels() *LabelTable {
	labels, _ := NewLabelTable(defaultCrops)
	return labels
}

// NewLabelTable copies names into an immutable table
func NewLabelTable(names map[int]string) (*LabelTable, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("label table is empty")
	}

	copied := make(map[int]string, len(names))
	for id, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("label %d has an empty name", id)
		}
		copied[id] = name
	}

	return &LabelTable{names: copied}, nil
}

// LoadLabels reads a YAML mapping of class id to crop name
func LoadLabels(path string) (*LabelTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels %s: %w", path, err)
	}

	var names map[int]string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse labels %s: %w", path, err)
	}

	labels, err := NewLabelTable(names)
	if err != nil {
		return nil, fmt.Errorf("invalid labels %s: %w", path, err)
	}
	return labels, nil
}

// Lookup returns the crop name for a class id
func (l *LabelTable) Lookup(id int) (string, bool) {
	name, ok := l.names[id]
	return name, ok
}

func (l *LabelTable) Len() int {
	return len(l.names)
}
