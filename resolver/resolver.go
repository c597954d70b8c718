package resolver

import (
	"reflect"
	"strings"
)

// Resolver is an opaque handle describing how names and resources are
// resolved in an execution scope.
type Resolver interface {
	Name() string
}

type named struct {
	name string
}

func (n named) Name() string { return n.name }

func (n named) String() string { return n.name }

// Named returns a Resolver identified by name. Two resolvers created with the
// same name compare equal.
func Named(name string) Resolver {
	return named{name: strings.TrimSpace(name)}
}

// Of returns the Resolver of the package that defines the dynamic type of v.
// Unnamed types fall back to the type's string form.
func Of(v any) Resolver {
	t := reflect.TypeOf(v)
	if t == nil {
		return named{name: "builtin"}
	}
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if pkg := t.PkgPath(); pkg != "" {
		return named{name: pkg}
	}
	return named{name: t.String()}
}

// NameOf returns r.Name(), or "<nil>" when r is nil.
func NameOf(r Resolver) string {
	if r == nil {
		return "<nil>"
	}
	return r.Name()
}
