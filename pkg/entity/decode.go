package entity

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mitchellh/mapstructure"
)

var (
	// ErrInvalidPayload wraps schema and decoding failures for raw payloads.
	ErrInvalidPayload = errors.New("entity: invalid payload")
	// ErrUnknownKind is returned when a payload names a kind other than meal
	// or workout.
	ErrUnknownKind = errors.New("entity: unknown kind")
)

//go:embed schema.yaml
var schemaSpec []byte

var (
	schemasOnce sync.Once
	schemas     map[Kind]*openapi3.Schema
	schemasErr  error
)

// rawEntry mirrors the loose shape used by the backing store. Both `key` and
// the legacy `$key` carry the store identifier.
type rawEntry struct {
	Kind        string     `mapstructure:"kind"`
	Key         string     `mapstructure:"key"`
	LegacyKey   string     `mapstructure:"$key"`
	Name        string     `mapstructure:"name"`
	Ingredients []string   `mapstructure:"ingredients"`
	Type        string     `mapstructure:"type"`
	Strength    *Strength  `mapstructure:"strength"`
	Endurance   *Endurance `mapstructure:"endurance"`
}

// DecodeJSON classifies a JSON object coming from the store.
func DecodeJSON(data []byte) (Entry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return Decode(raw)
}

// DecodeAll classifies a list of raw payloads, stopping at the first failure.
func DecodeAll(raws []map[string]any) ([]Entry, error) {
	out := make([]Entry, 0, len(raws))
	for idx, raw := range raws {
		entry, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", idx, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

// Decode classifies a raw store payload into an Entry. An explicit `kind`
// wins; without one, a non-null `ingredients` field marks a meal and anything
// else is a workout. The payload is validated against the schema for the
// resolved kind before it is decoded.
func Decode(raw map[string]any) (Entry, error) {
	if raw == nil {
		return Entry{}, fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
	}

	normalized, err := normalize(raw)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	kind, err := classify(normalized)
	if err != nil {
		return Entry{}, err
	}

	if err := validate(kind, normalized); err != nil {
		return Entry{}, err
	}

	var payload rawEntry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &payload,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Entry{}, fmt.Errorf("entity: configure decoder: %w", err)
	}
	if err := decoder.Decode(normalized); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	key := strings.TrimSpace(payload.Key)
	if key == "" {
		key = strings.TrimSpace(payload.LegacyKey)
	}

	if kind == KindMeal {
		return NewMeal(key, payload.Name, payload.Ingredients...), nil
	}

	details := WorkoutDetails{Type: WorkoutType(payload.Type)}
	if payload.Strength != nil {
		details.Strength = *payload.Strength
	}
	if payload.Endurance != nil {
		details.Endurance = *payload.Endurance
	}
	return NewWorkout(key, payload.Name, details), nil
}

func classify(raw map[string]any) (Kind, error) {
	if value, ok := raw["kind"]; ok && value != nil {
		name, _ := value.(string)
		kind := Kind(strings.ToLower(strings.TrimSpace(name)))
		if !kind.Valid() {
			return "", fmt.Errorf("%w: %v", ErrUnknownKind, value)
		}
		return kind, nil
	}
	if ingredients, ok := raw["ingredients"]; ok && ingredients != nil {
		return KindMeal, nil
	}
	return KindWorkout, nil
}

func validate(kind Kind, raw map[string]any) error {
	loaded, err := loadSchemas()
	if err != nil {
		return err
	}
	schema, ok := loaded[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err := schema.VisitJSON(raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, kind, err)
	}
	return nil
}

func loadSchemas() (map[Kind]*openapi3.Schema, error) {
	schemasOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(schemaSpec)
		if err != nil {
			schemasErr = fmt.Errorf("entity: load schema: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			schemasErr = fmt.Errorf("entity: validate schema: %w", err)
			return
		}
		if doc.Components == nil {
			schemasErr = errors.New("entity: schema has no components")
			return
		}

		out := make(map[Kind]*openapi3.Schema, 2)
		for kind, name := range map[Kind]string{KindMeal: "Meal", KindWorkout: "Workout"} {
			ref, ok := doc.Components.Schemas[name]
			if !ok || ref == nil || ref.Value == nil {
				schemasErr = fmt.Errorf("entity: schema %q missing", name)
				return
			}
			out[kind] = ref.Value
		}
		schemas = out
	})
	return schemas, schemasErr
}

// normalize round-trips the payload through JSON so numbers, nested maps and
// slices have the shapes the schema validator expects regardless of whether
// the payload came from JSON, YAML or Go literals.
func normalize(raw map[string]any) (map[string]any, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Encode renders e in the flat store format accepted by Decode.
func Encode(e Entry) map[string]any {
	out := map[string]any{
		"kind": string(e.Kind),
		"name": e.Name,
	}
	if e.Key != "" {
		out["key"] = e.Key
	}
	if e.IsMeal() {
		ingredients := make([]any, 0, len(e.Ingredients))
		for _, ingredient := range e.Ingredients {
			ingredients = append(ingredients, ingredient)
		}
		out["ingredients"] = ingredients
		return out
	}
	if e.Workout == nil {
		return out
	}
	if e.Workout.Type != "" {
		out["type"] = string(e.Workout.Type)
	}
	switch e.Workout.Type {
	case WorkoutEndurance:
		out["endurance"] = map[string]any{
			"distance": e.Workout.Endurance.Distance,
			"duration": e.Workout.Endurance.Duration,
		}
	default:
		out["strength"] = map[string]any{
			"reps":   e.Workout.Strength.Reps,
			"sets":   e.Workout.Strength.Sets,
			"weight": e.Workout.Strength.Weight,
		}
	}
	return out
}
