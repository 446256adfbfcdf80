package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor is one entry of a blueprint's component list. The set of
// implementations is closed: UnitSpawner, Health, AttackStats, VisionRange,
// OpponentFollower, MovementSpeed and Visible.
type Descriptor interface {
	descriptorTag() string
}

// UnitSpawner makes a building produce units of UnitID every SpawnTime seconds.
type UnitSpawner struct {
	UnitID    string  `json:"unit_id" yaml:"unit_id"`
	SpawnTime float64 `json:"spawn_time" yaml:"spawn_time"`
}

// Health gives the entity hit points.
type Health struct {
	MaxHealth int `json:"max_health" yaml:"max_health"`
	Health    int `json:"health" yaml:"health"`
}

// AttackStats makes the entity combat-capable.
type AttackStats struct {
	Damage      int     `json:"damage" yaml:"damage"`
	AttackSpeed float64 `json:"attack_speed" yaml:"attack_speed"` // attacks per second
	AttackRange float64 `json:"attack_range" yaml:"attack_range"`
}

// VisionRange is the radius within which the entity perceives others.
type VisionRange float64

// OpponentFollower marks an entity that chases its attack target.
type OpponentFollower struct{}

// MovementSpeed is in world units per second.
type MovementSpeed float64

// Visible marks an entity that enemies may perceive and target.
type Visible struct{}

func (UnitSpawner) descriptorTag() string      { return "UnitSpawner" }
func (Health) descriptorTag() string           { return "Health" }
func (AttackStats) descriptorTag() string      { return "AttackStats" }
func (VisionRange) descriptorTag() string      { return "VisionRange" }
func (OpponentFollower) descriptorTag() string { return "OpponentFollower" }
func (MovementSpeed) descriptorTag() string    { return "MovementSpeed" }
func (Visible) descriptorTag() string          { return "Visible" }

// Components is an ordered descriptor list. In JSON and YAML each element is
// either a bare variant name ("Visible") or a single-key object whose key is
// the variant name and whose value is its payload ({"VisionRange": 200}).
type Components []Descriptor

// decodeDescriptor builds the variant named tag. payload decodes the variant's
// value into its argument; it is nil for bare variant names.
func decodeDescriptor(tag string, payload func(any) error) (Descriptor, error) {
	need := func(v any) error {
		if payload == nil {
			return fmt.Errorf("%s: missing payload", tag)
		}
		if err := payload(v); err != nil {
			return fmt.Errorf("%s: %w", tag, err)
		}
		return nil
	}
	switch tag {
	case "Visible":
		return Visible{}, nil
	case "OpponentFollower":
		return OpponentFollower{}, nil
	case "UnitSpawner":
		var d UnitSpawner
		err := need(&d)
		return d, err
	case "Health":
		var d Health
		err := need(&d)
		return d, err
	case "AttackStats":
		var d AttackStats
		err := need(&d)
		return d, err
	case "VisionRange":
		var d float64
		err := need(&d)
		return VisionRange(d), err
	case "MovementSpeed":
		var d float64
		err := need(&d)
		return MovementSpeed(d), err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDescriptor, tag)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Components) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Components, 0, len(raw))
	for i, elem := range raw {
		d, err := decodeJSONDescriptor(elem)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		out = append(out, d)
	}
	*c = out
	return nil
}

func decodeJSONDescriptor(elem json.RawMessage) (Descriptor, error) {
	elem = bytes.TrimSpace(elem)
	if len(elem) > 0 && elem[0] == '"' {
		var tag string
		if err := json.Unmarshal(elem, &tag); err != nil {
			return nil, err
		}
		return decodeDescriptor(tag, nil)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil {
		return nil, err
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one variant key, got %d", ErrUnknownDescriptor, len(obj))
	}
	var tag string
	var body json.RawMessage
	for k, v := range obj {
		tag, body = k, v
	}
	return decodeDescriptor(tag, func(v any) error {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Components) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: components must be a sequence", node.Line)
	}
	out := make(Components, 0, len(node.Content))
	for i, elem := range node.Content {
		d, err := decodeYAMLDescriptor(elem)
		if err != nil {
			return fmt.Errorf("component %d (line %d): %w", i, elem.Line, err)
		}
		out = append(out, d)
	}
	*c = out
	return nil
}

func decodeYAMLDescriptor(elem *yaml.Node) (Descriptor, error) {
	switch elem.Kind {
	case yaml.ScalarNode:
		return decodeDescriptor(elem.Value, nil)
	case yaml.MappingNode:
		if len(elem.Content) != 2 {
			return nil, fmt.Errorf("%w: expected exactly one variant key, got %d", ErrUnknownDescriptor, len(elem.Content)/2)
		}
		body := elem.Content[1]
		return decodeDescriptor(elem.Content[0].Value, body.Decode)
	}
	return nil, fmt.Errorf("%w: unexpected yaml node kind %d", ErrUnknownDescriptor, elem.Kind)
}
