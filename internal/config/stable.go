package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"
)

var errStableResult = errors.New("stableResult must be true or a list of indices")

// StableResult is either `true` (the whole result is stable) or a list of
// stable destructuring slots. `false` is accepted and means neither.
type StableResult struct {
	Whole bool
	Slots []int `validate:"dive,gte=0"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StableResult) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var whole bool
		if err := value.Decode(&whole); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, errStableResult)
		}
		*s = StableResult{Whole: whole}
		return nil
	case yaml.SequenceNode:
		var slots []int
		if err := value.Decode(&slots); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, errStableResult)
		}
		*s = StableResult{Slots: slots}
		return nil
	}
	return fmt.Errorf("line %d: %w", value.Line, errStableResult)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StableResult) UnmarshalJSON(data []byte) error {
	var whole bool
	if err := json.Unmarshal(data, &whole); err == nil {
		*s = StableResult{Whole: whole}
		return nil
	}
	var slots []int
	if err := json.Unmarshal(data, &slots); err != nil {
		return errStableResult
	}
	*s = StableResult{Slots: slots}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *StableResult) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case bool:
		*s = StableResult{Whole: v}
		return nil
	case []any:
		slots := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := item.(int64)
			if !ok {
				return errStableResult
			}
			slot, err := safecast.Conv[int](n)
			if err != nil {
				return fmt.Errorf("%w: %w", errStableResult, err)
			}
			slots = append(slots, slot)
		}
		*s = StableResult{Slots: slots}
		return nil
	}
	return errStableResult
}

// MarshalJSON writes the same shapes UnmarshalJSON accepts.
func (s StableResult) MarshalJSON() ([]byte, error) {
	if s.Whole {
		return []byte("true"), nil
	}
	if s.Slots == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Slots)
}
