package ast

import (
	"reflect"
)

// Dump converts a document into plain maps and slices suitable for JSON or
// YAML encoding. Every node becomes a map with a "kind" key; zero-valued
// fields and locations are omitted.
func Dump(doc *Document) []any {
	out := make([]any, 0, len(doc.Items))
	for _, item := range doc.Items {
		out = append(out, dumpValue(reflect.ValueOf(item)))
	}
	return out
}

// DumpExpr converts a single expression like Dump.
func DumpExpr(e Expr) any {
	return dumpValue(reflect.ValueOf(e))
}

var (
	locationType = reflect.TypeOf(Location{})
	nodeType     = reflect.TypeOf((*Node)(nil)).Elem()
)

func dumpValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if v.Type().Implements(nodeType) && v.Kind() == reflect.Pointer {
			m := dumpStruct(v.Elem())
			m["kind"] = v.Interface().(Node).Kind().String()
			return m
		}
		return dumpValue(v.Elem())
	case reflect.Struct:
		return dumpStruct(v)
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		items := make([]any, v.Len())
		for i := range items {
			items[i] = dumpValue(v.Index(i))
		}
		return items
	default:
		return v.Interface()
	}
}

func dumpStruct(v reflect.Value) map[string]any {
	m := make(map[string]any)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type == locationType {
			continue
		}
		fv := v.Field(i)
		if fv.IsZero() {
			continue
		}
		if d := dumpValue(fv); d != nil {
			m[lowerFirst(f.Name)] = d
		}
	}
	return m
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
