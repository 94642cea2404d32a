package settings

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Value returns the current value of the field key of d, as decoded from
// its yaml form.
func (s *Store) Value(d Domain, key string) (any, error) {
	fields, err := domainFields(s.cur, d)
	if err != nil {
		return nil, err
	}
	v, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("settings: %s: unknown field %q", d, key)
	}
	return v, nil
}

// SetValue assigns the field key of d and publishes d.
func (s *Store) SetValue(d Domain, key string, value any) error {
	fields, err := domainFields(s.cur, d)
	if err != nil {
		return err
	}
	if _, ok := fields[key]; !ok {
		return fmt.Errorf("settings: %s: unknown field %q", d, key)
	}
	fields[key] = value

	data, err := yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("settings: %s: marshal: %w", d, err)
	}
	next := s.Snapshot()
	if err := yaml.Unmarshal(data, domainPtr(&next, d)); err != nil {
		return fmt.Errorf("settings: %s.%s: %w", d, key, err)
	}
	return s.Update(d, func(st *Settings) { *st = next })
}

// Toggle flips a boolean field.
func (s *Store) Toggle(d Domain, key string) error {
	v, err := s.Value(d, key)
	if err != nil {
		return err
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("settings: %s.%s: not a toggle", d, key)
	}
	return s.SetValue(d, key, !b)
}

// Step moves a range field by n steps, clamped to the field's bounds.
func (s *Store) Step(d Domain, key string, n int) error {
	f, ok := schemaField(d, key)
	if !ok || f.Kind != FieldRange {
		return fmt.Errorf("settings: %s.%s: not a range", d, key)
	}
	v, err := s.Value(d, key)
	if err != nil {
		return err
	}
	cur, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("settings: %s.%s: not a number", d, key)
	}
	next := cur + float64(n)*f.Step
	// Snap to the step grid so repeated nudges do not accumulate drift.
	next = math.Round(next/f.Step) * f.Step
	next = math.Max(f.Min, math.Min(f.Max, next))
	return s.SetValue(d, key, next)
}

// Cycle advances an enum field to its next option, wrapping around.
func (s *Store) Cycle(d Domain, key string) error {
	f, ok := schemaField(d, key)
	if !ok || f.Kind != FieldEnum || len(f.Options) == 0 {
		return fmt.Errorf("settings: %s.%s: not an enum", d, key)
	}
	v, err := s.Value(d, key)
	if err != nil {
		return err
	}
	cur, _ := v.(string)
	next := f.Options[0].Value
	for i, o := range f.Options {
		if o.Value == cur {
			next = f.Options[(i+1)%len(f.Options)].Value
			break
		}
	}
	return s.SetValue(d, key, next)
}

func schemaField(d Domain, key string) (Field, bool) {
	for _, f := range schemas[d] {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func domainFields(st Settings, d Domain) (map[string]any, error) {
	if !validDomain(d) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	data, err := yaml.Marshal(domainValue(st, d))
	if err != nil {
		return nil, fmt.Errorf("settings: %s: marshal: %w", d, err)
	}
	fields := make(map[string]any)
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("settings: %s: unmarshal: %w", d, err)
	}
	return fields, nil
}

func domainPtr(st *Settings, d Domain) any {
	switch d {
	case DomainGrid:
		return &st.Grid
	case DomainGround:
		return &st.Ground
	case DomainSky:
		return &st.Sky
	case DomainFog:
		return &st.Fog
	case DomainShadow:
		return &st.Shadow
	case DomainVoxels:
		return &st.Voxels
	case DomainBroadcaster:
		return &st.Broadcaster
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
