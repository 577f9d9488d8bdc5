package simplerpc

import (
	"fmt"
	"reflect"
	"strings"
)

// descriptorOf renders a type as the descriptor string carried on the
// wire. Both sides derive descriptors from their own Go types, so two
// descriptors match if and only if the strings are equal: builtins
// render as their kind name, named types as "import/path.Name", and
// composites recurse over their element types.
func descriptorOf(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + descriptorOf(t.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 && t.Elem().PkgPath() == "" {
			return "[]byte"
		}
		return "[]" + descriptorOf(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), descriptorOf(t.Elem()))
	case reflect.Map:
		return "map[" + descriptorOf(t.Key()) + "]" + descriptorOf(t.Elem())
	}
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return t.Name()
	}
	panic("simplerpc: cannot describe type " + t.String())
}

func descriptorFor[T any]() string {
	return descriptorOf(reflect.TypeOf((*T)(nil)).Elem())
}

// signature is the dispatch key: method name plus the ordered
// parameter descriptors, so same-named methods with different
// parameters stay distinct.
func signature(method string, paramTypes []string) string {
	return method + "(" + strings.Join(paramTypes, ",") + ")"
}
