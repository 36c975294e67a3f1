package extension

import (
	"encoding/json"
	"fmt"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

const (
	// DefaultNamespace is the namespace used for this tool's extensions
	DefaultNamespace = "org.cubingusa.natshelper.v1"

	// SpecURL is attached to every extension record created here
	SpecURL = "https://github.com/cubingusa/natshelper/blob/main/specification.md"
)

// Type names for the extension records this tool reads and writes
const (
	TypeActivity = "Activity"
	TypePerson   = "Person"
)

// ActivityData is the payload of the Activity extension
type ActivityData struct {
	// Adjustment is the free-text group adjustment entered for a room
	Adjustment string `json:"adjustment"`
}

// PersonData is the payload of the Person extension
type PersonData struct {
	// Properties holds arbitrary numeric person properties, including job preferences
	Properties map[string]float64 `json:"properties,omitempty"`
}

// ID composes the extension identifier for a namespace and type
func ID(typeName, namespace string) string {
	return namespace + "." + typeName
}

// GetOrCreate returns the mutable data record for an extension, creating and
// appending an empty record if the entity does not have one yet.
func GetOrCreate(entity model.Extendable, typeName, namespace string) map[string]any {
	ext := find(entity, ID(typeName, namespace))
	if ext == nil {
		ext = &model.Extension{
			ID:      ID(typeName, namespace),
			SpecURL: SpecURL,
			Data:    map[string]any{},
		}
		list := entity.ExtensionList()
		*list = append(*list, ext)
	}
	if ext.Data == nil {
		ext.Data = map[string]any{}
	}
	return ext.Data
}

// Get returns the data record for an extension without creating it
func Get(entity model.Extendable, typeName, namespace string) (map[string]any, bool) {
	ext := find(entity, ID(typeName, namespace))
	if ext == nil {
		return nil, false
	}
	return ext.Data, true
}

func find(entity model.Extendable, id string) *model.Extension {
	for _, ext := range *entity.ExtensionList() {
		if ext != nil && ext.ID == id {
			return ext
		}
	}
	return nil
}

// Load decodes an extension record into a typed payload.
// A missing extension yields the zero value.
func Load[T any](entity model.Extendable, typeName, namespace string) (T, error) {
	var out T
	data, ok := Get(entity, typeName, namespace)
	if !ok || len(data) == 0 {
		return out, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return out, fmt.Errorf("failed to marshal extension %s: %w", ID(typeName, namespace), err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode extension %s: %w", ID(typeName, namespace), err)
	}
	return out, nil
}

// Store encodes a typed payload into the extension record, merging its fields
// over any existing keys so unknown fields written by other tools are kept.
func Store[T any](entity model.Extendable, typeName, namespace string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal extension %s: %w", ID(typeName, namespace), err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("extension %s payload must be an object: %w", ID(typeName, namespace), err)
	}

	data := GetOrCreate(entity, typeName, namespace)
	for key, val := range fields {
		data[key] = val
	}
	return nil
}
