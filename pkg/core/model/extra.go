package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Extra holds the fields of a WCIF object that the model does not declare,
// keyed by JSON name. They are written back unchanged, so a read-modify-write
// of a document keeps everything the tool does not edit.
type Extra map[string]json.RawMessage

var fieldNames sync.Map // reflect.Type -> map[string]bool

// declaredFields returns the JSON names of the struct's encoded fields
func declaredFields(t reflect.Type) map[string]bool {
	if names, ok := fieldNames.Load(t); ok {
		return names.(map[string]bool)
	}

	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		names[name] = true
	}

	fieldNames.Store(t, names)
	return names
}

// decodeWithExtra decodes data into v, a pointer to a struct without JSON
// methods, and returns the fields v does not declare. Declared fields sent as
// null are kept too, so an omitted zero value is written back as null.
func decodeWithExtra(data []byte, v any) (Extra, error) {
	if isNull(data) {
		return nil, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	declared := declaredFields(reflect.TypeOf(v).Elem())
	var extra Extra
	for key, value := range raw {
		if declared[key] && !isNull(value) {
			continue
		}
		if extra == nil {
			extra = make(Extra)
		}
		extra[key] = value
	}
	return extra, nil
}

// encodeWithExtra encodes v and appends the extra fields it did not write, in key order
func encodeWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var written map[string]json.RawMessage
	if err := json.Unmarshal(data, &written); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		if _, ok := written[key]; !ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return data, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for i, key := range keys {
		if i > 0 || len(written) > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// orEmpty keeps WCIF arrays from being written as null
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
