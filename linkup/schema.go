package linkup

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

var timeType = reflect.TypeFor[time.Time]()

// SchemaFor derives the structured output schema for T and serializes it.
func SchemaFor[T any]() (string, error) {
	s, err := deriveSchema(reflect.TypeFor[T]())
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", &SchemaError{Type: reflect.TypeFor[T]().String(), Reason: err.Error()}
	}
	return string(b), nil
}

// DeriveSchema derives a JSON Schema describing the type of v.
//
// Non-pointer fields are required and non-null. Pointer fields are optional
// and accept null. Maps, interfaces, channels, funcs, complex numbers and
// recursive structs are rejected with a *SchemaError.
func DeriveSchema(v any) (*jsonschema.Schema, error) {
	if v == nil {
		return nil, &SchemaError{Type: "<nil>", Reason: "no type information"}
	}
	return deriveSchema(reflect.TypeOf(v))
}

func deriveSchema(t reflect.Type) (*jsonschema.Schema, error) {
	if err := checkType(t, nil); err != nil {
		return nil, err
	}
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := r.ReflectFromType(t)
	s.Version = ""
	s.ID = ""
	s.Definitions = nil
	enforceNullability(t, s)
	return s, nil
}

// checkType rejects shapes the reflector would render as open-ended or
// could not render at all. stack holds the structs being visited.
func checkType(t reflect.Type, stack []reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return nil
	}
	switch t.Kind() {
	case reflect.Map:
		return &SchemaError{Type: t.String(), Reason: "maps are open-ended"}
	case reflect.Interface:
		return &SchemaError{Type: t.String(), Reason: "interfaces are open-ended"}
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Uintptr,
		reflect.Complex64, reflect.Complex128:
		return &SchemaError{Type: t.String(), Reason: "kind " + t.Kind().String() + " has no JSON form"}
	case reflect.Slice, reflect.Array:
		return checkType(t.Elem(), stack)
	case reflect.Struct:
		for _, seen := range stack {
			if seen == t {
				return &SchemaError{Type: t.String(), Reason: "recursive type"}
			}
		}
		stack = append(stack, t)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if _, _, ok := fieldName(f); !ok {
				continue
			}
			if err := checkType(f.Type, stack); err != nil {
				return err
			}
		}
	}
	return nil
}

func enforceNullability(t reflect.Type, s *jsonschema.Schema) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if s == nil || t == timeType {
		return
	}
	switch t.Kind() {
	case reflect.Struct:
		required := make([]string, 0, t.NumField())
		applyFields(t, s, &required)
		s.Required = required
	case reflect.Slice, reflect.Array:
		enforceNullability(t.Elem(), s.Items)
	}
}

func applyFields(t reflect.Type, s *jsonschema.Schema, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, embedded, ok := fieldName(f)
		if !ok {
			continue
		}
		if embedded {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			applyFields(et, s, required)
			continue
		}
		if s.Properties == nil {
			continue
		}
		ps, found := s.Properties.Get(name)
		if !found || ps == nil {
			continue
		}
		enforceNullability(f.Type, ps)
		if f.Type.Kind() == reflect.Pointer {
			s.Properties.Set(name, &jsonschema.Schema{
				AnyOf: []*jsonschema.Schema{ps, {Type: "null"}},
			})
			continue
		}
		*required = append(*required, name)
	}
}

// fieldName resolves a struct field the way encoding/json does. embedded
// reports an untagged anonymous struct whose fields are promoted.
func fieldName(f reflect.StructField) (name string, embedded bool, ok bool) {
	if f.Tag.Get("jsonschema") == "-" {
		return "", false, false
	}
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag == "-" {
		return "", false, false
	}
	if f.Anonymous && tag == "" {
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			return "", true, true
		}
	}
	if !f.IsExported() {
		return "", false, false
	}
	if tag != "" {
		return tag, false, true
	}
	return f.Name, false, true
}
