// Package mask hides sensitive struct fields before values are logged or printed.
//
// Fields tagged with `mask:"true"` have non-zero values replaced by a placeholder.
package mask

import (
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	tagName     = "mask"
	Placeholder = "***masked***"
)

// StructToOrdMap flattens a struct into an ordered map with sensitive values masked.
// Nested structs are flattened with dotted keys. Field names are taken from the
// json tag, then the yaml tag, then the field name; fields tagged "-" are skipped.
// Non-struct values are returned under the empty key.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}
	return toOrdMap(reflect.ValueOf(v), "")
}

// Value returns v ready for logging: structs (and pointers to structs) become
// masked ordered maps, anything else is returned unchanged.
func Value(v any) any {
	if v == nil || !isExpandable(reflect.ValueOf(v)) {
		return v
	}
	return StructToOrdMap(v)
}

func toOrdMap(val reflect.Value, prefix string) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()

	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return om
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return om
	}

	typ := val.Type()
	for i := range val.NumField() {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		name, skip := fieldName(fieldType)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		field := val.Field(i)
		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			om.Set(name, maskValue(field))
		case isExpandable(field):
			nested := toOrdMap(field, name)
			for pair := nested.Oldest(); pair != nil; pair = pair.Next() {
				om.Set(pair.Key, pair.Value)
			}
		default:
			om.Set(name, field.Interface())
		}
	}

	return om
}

func isExpandable(val reflect.Value) bool {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		val = val.Elem()
	}
	return val.Kind() == reflect.Struct
}

// maskValue keeps zero values visible so that "not set" stays distinguishable from "set".
func maskValue(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds have no nil state
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if val.IsNil() {
			return nil
		}
	}

	if val.IsZero() {
		return val.Interface()
	}
	return Placeholder
}

func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		value, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if value == "-" {
			return "", true
		}
		if name, _, _ := strings.Cut(value, ","); name != "" {
			return name, false
		}
	}
	return field.Name, false
}
