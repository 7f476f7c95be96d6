package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PerStage is a design field given either as one value for every stage or
// as one value per stage.
type PerStage[T any] struct {
	values []T
	list   bool
}

func Scalar[T any](v T) PerStage[T] {
	return PerStage[T]{values: []T{v}}
}

func List[T any](vs ...T) PerStage[T] {
	return PerStage[T]{values: append([]T(nil), vs...), list: true}
}

// IsList reports whether the field was given per stage.
func (p PerStage[T]) IsList() bool { return p.list }

func (p PerStage[T]) Len() int { return len(p.values) }

func (p PerStage[T]) Values() []T { return p.values }

// At returns the value for stage index i (0-based).
func (p PerStage[T]) At(i int) T {
	if !p.list {
		return p.values[0]
	}
	return p.values[i]
}

func (p PerStage[T]) First() T { return p.values[0] }

func (p PerStage[T]) Last() T { return p.values[len(p.values)-1] }

func (p *PerStage[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var vs []T
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("line %d: empty list", node.Line)
		}
		*p = List(vs...)
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Scalar(v)
	return nil
}

func (p PerStage[T]) MarshalYAML() (any, error) {
	if p.list {
		return p.values, nil
	}
	if len(p.values) == 0 {
		return nil, nil
	}
	return p.values[0], nil
}

func (p *PerStage[T]) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var vs []T
		if err := json.Unmarshal(data, &vs); err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("empty list")
		}
		*p = List(vs...)
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Scalar(v)
	return nil
}

func (p PerStage[T]) MarshalJSON() ([]byte, error) {
	if p.list {
		return json.Marshal(p.values)
	}
	if len(p.values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(p.values[0])
}

// EqualSplit is the TemperatureRise keyword for an even split of the
// overall temperature rise.
const EqualSplit = "equal"

// TemperatureRise is the per-stage stagnation temperature rise: either an
// explicit list or an equal split of the overall rise.
type TemperatureRise struct {
	Equal  bool
	Values []float64
}

func EqualRise() TemperatureRise { return TemperatureRise{Equal: true} }

func Rises(vs ...float64) TemperatureRise { return TemperatureRise{Values: vs} }

func (t *TemperatureRise) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value != EqualSplit {
			return fmt.Errorf("line %d: temperature rise must be %q or a list, got %q", node.Line, EqualSplit, node.Value)
		}
		*t = EqualRise()
		return nil
	}
	var vs []float64
	if err := node.Decode(&vs); err != nil {
		return err
	}
	*t = Rises(vs...)
	return nil
}

func (t TemperatureRise) MarshalYAML() (any, error) {
	if t.Equal {
		return EqualSplit, nil
	}
	return t.Values, nil
}

func (t *TemperatureRise) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != EqualSplit {
			return fmt.Errorf("temperature rise must be %q or a list, got %q", EqualSplit, s)
		}
		*t = EqualRise()
		return nil
	}
	var vs []float64
	if err := json.Unmarshal(data, &vs); err != nil {
		return err
	}
	*t = Rises(vs...)
	return nil
}

func (t TemperatureRise) MarshalJSON() ([]byte, error) {
	if t.Equal {
		return json.Marshal(EqualSplit)
	}
	return json.Marshal(t.Values)
}
