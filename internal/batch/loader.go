package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// instanceFile is the on-disk YAML layout of a problem instance.
type instanceFile struct {
	Resources []resourceSpec `yaml:"resources"`
	Tasks     []taskSpec     `yaml:"tasks"`
}

type resourceSpec struct {
	Capacity int `yaml:"capacity"`
}

type taskSpec struct {
	Type         int   `yaml:"type"`
	Duration     int   `yaml:"duration"`
	Resource     int   `yaml:"resource"`
	Predecessors []int `yaml:"predecessors,omitempty"`
}

// LoadInstance reads and validates a problem instance from a YAML file.
func LoadInstance(path string) (*Instance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance %s: %w", path, err)
	}

	var file instanceFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse instance %s: %w", path, err)
	}

	n := len(file.Tasks)
	types := make([]int, n)
	durations := make([]int, n)
	taskResources := make([]int, n)
	preds := make([][]int, n)
	hasPreds := false
	for t, spec := range file.Tasks {
		types[t] = spec.Type
		durations[t] = spec.Duration
		taskResources[t] = spec.Resource
		if len(spec.Predecessors) > 0 {
			preds[t] = spec.Predecessors
			hasPreds = true
		}
	}
	if !hasPreds {
		preds = nil
	}

	capacities := make([]int, len(file.Resources))
	for r, spec := range file.Resources {
		capacities[r] = spec.Capacity
	}

	inst, err := NewInstance(n, len(file.Resources), types, durations, taskResources, capacities, preds)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", path, err)
	}
	return inst, nil
}
