package dokufy

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Placeholder handlers supply substitution data in place of Data values.
// A handler may implement any of Mapper, PlaceholderProvider and Resolver;
// they are consulted in that order and the first one found wins.
type (
	// Mapper returns the full placeholder mapping.
	Mapper interface {
		ToMap() map[string]any
	}

	// PlaceholderProvider returns the placeholders it knows about.
	PlaceholderProvider interface {
		Placeholders() map[string]any
	}

	// Resolver resolves placeholder values on demand.
	Resolver interface {
		Resolve() map[string]any
	}
)

// MapFunc adapts a function to Mapper.
type MapFunc func() map[string]any

// ToMap implements Mapper.
func (f MapFunc) ToMap() map[string]any { return f() }

// PlaceholdersFunc adapts a function to PlaceholderProvider.
type PlaceholdersFunc func() map[string]any

// Placeholders implements PlaceholderProvider.
func (f PlaceholdersFunc) Placeholders() map[string]any { return f() }

// ResolveFunc adapts a function to Resolver.
type ResolveFunc func() map[string]any

// Resolve implements Resolver.
func (f ResolveFunc) Resolve() map[string]any { return f() }

// HandlerData returns the mapping a handler contributes. A handler with
// none of the capabilities contributes an empty mapping.
func HandlerData(handler any) map[string]any {
	var data map[string]any
	switch h := handler.(type) {
	case Mapper:
		data = h.ToMap()
	case PlaceholderProvider:
		data = h.Placeholders()
	case Resolver:
		data = h.Resolve()
	}
	if data == nil {
		return map[string]any{}
	}
	return data
}

// Substitute replaces {{key}} tokens in content with stringified values.
// Each key matches all four spacing forms: {{ key }}, {{key}}, {{ key}} and
// {{key }}. Keys are applied in sorted order. Values that cannot be
// stringified are skipped and their tokens stay verbatim.
func Substitute(content string, data map[string]any) string {
	for _, key := range slices.Sorted(maps.Keys(data)) {
		value, ok := stringify(data[key])
		if !ok {
			continue
		}
		content = strings.NewReplacer(
			"{{ "+key+" }}", value,
			"{{"+key+"}}", value,
			"{{ "+key+"}}", value,
			"{{"+key+" }}", value,
		).Replace(content)
	}
	return content
}

// stringify formats scalar values and fmt.Stringer implementations.
func stringify(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", false
	}

	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return boolText(val), true
	case fmt.Stringer:
		return val.String(), true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return boolText(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	default:
		return "", false
	}
}

// boolText renders true as "1" and false as "", the scalar string cast
// templates written for Dokufy expect.
func boolText(b bool) string {
	if b {
		return "1"
	}
	return ""
}
