package facade

import (
	"reflect"
	"strings"
	"unicode"
)

// Identity names the component a facade logs for: a Go type, a plain
// name, or both, in which case the type wins. Identities are comparable
// and serve as registry keys.
type Identity struct {
	typ  reflect.Type
	name string
}

// TypeOf returns the identity of v's dynamic type. Pointer types are
// dereferenced, so *Calendar and Calendar share an identity. TypeOf(nil)
// is the zero Identity.
func TypeOf(v any) Identity {
	return Identity{typ: baseType(reflect.TypeOf(v))}
}

// ForType returns the identity of T.
func ForType[T any]() Identity {
	return Identity{typ: baseType(reflect.TypeOf((*T)(nil)).Elem())}
}

// Named returns an identity for a plain name.
func Named(name string) Identity {
	return Identity{name: name}
}

func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Type returns the identity's type, or nil.
func (id Identity) Type() reflect.Type { return id.typ }

// Name returns the identity's plain name, or "".
func (id Identity) Name() string { return id.name }

// IsZero reports whether neither a type nor a name is set.
func (id Identity) IsZero() bool {
	return id.typ == nil && id.name == ""
}

// QualifiedName returns the stream name for the identity: the import path
// and type name joined by a dot for a type, the bare name otherwise.
//
// Owners are expected to be named types. Unnamed and builtin types use
// their Go syntax, and blanks in a type name (struct literals, function
// types, such types as generic arguments) become underscores so the name
// stays a valid stream name.
func (id Identity) QualifiedName() string {
	if id.typ == nil {
		return id.name
	}
	if id.typ.PkgPath() == "" || id.typ.Name() == "" {
		return unblank(id.typ.String())
	}
	return id.typ.PkgPath() + "." + unblank(id.typ.Name())
}

func unblank(s string) string {
	if !strings.ContainsFunc(s, unicode.IsSpace) {
		return s
	}
	return strings.Join(strings.Fields(s), "_")
}

func (id Identity) String() string {
	return id.QualifiedName()
}

// ChannelKey returns the stream name for a side channel of id:
// "<channel>.<qualified name>".
func ChannelKey(channel string, id Identity) string {
	return channel + "." + id.QualifiedName()
}
