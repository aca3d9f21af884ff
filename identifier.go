package webdispatch

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Category is the type category handed to the Resolver for handlers. It
	// is also the root segment of every handler namespace and the suffix of
	// registered type names.
	Category = "Controller"

	// Separator joins namespace segments and splits prefix paths.
	Separator = "/"
)

// Identifier is the validated lookup key for a handler type.
type Identifier struct {
	// Plugin is the plugin the handler lives in, or "" for the application.
	Plugin string

	// Name is the raw handler name from the request, e.g. "Articles".
	Name string

	// Namespace is the handler namespace, e.g. "Controller/Admin/Api".
	Namespace string
}

// Lookup returns the name handed to the Resolver: "Plugin.Name", or Name
// when no plugin is set.
func (id Identifier) Lookup() string {
	if id.Plugin == "" {
		return id.Name
	}
	return id.Plugin + "." + id.Name
}

// String returns the qualified form used in logs, e.g.
// "Blog.Controller/Admin/Articles".
func (id Identifier) String() string {
	s := id.Namespace + Separator + id.Name
	if id.Plugin != "" {
		s = id.Plugin + "." + s
	}
	return s
}

// BuildIdentifier derives the handler Identifier from the request's routing
// parameters. Every rejection is reported as the same *MissingHandlerError,
// whichever rule tripped.
func BuildIdentifier(req Request) (Identifier, error) {
	id := Identifier{
		Plugin:    req.Param(ParamPlugin),
		Name:      req.Param(ParamController),
		Namespace: Namespace(req.Param(ParamPrefix)),
	}
	if !ValidName(id.Name) {
		return Identifier{}, missingHandler(req)
	}
	return id, nil
}

// Namespace returns the handler namespace for a routing prefix. Each prefix
// segment is camelized independently:
//
//	Namespace("")          // "Controller"
//	Namespace("admin")     // "Controller/Admin"
//	Namespace("admin/api") // "Controller/Admin/Api"
func Namespace(prefix string) string {
	if prefix == "" {
		return Category
	}
	if !strings.Contains(prefix, Separator) {
		return Category + Separator + Camelize(prefix)
	}
	segments := strings.Split(prefix, Separator)
	for i, seg := range segments {
		segments[i] = Camelize(seg)
	}
	return Category + Separator + strings.Join(segments, Separator)
}

// Camelize turns an underscored word list into CamelCase. Words are separated
// by '_' or ' ' and only the first rune of each word is changed:
// "admin_panel" becomes "AdminPanel", "api_V2" becomes "ApiV2" and
// "admin-panel" becomes "Admin-panel".
func Camelize(s string) string {
	// Casers keep state between calls and are not safe to share.
	upper := cases.Upper(language.Und)
	var b strings.Builder
	for _, w := range strings.Split(strings.ReplaceAll(s, "_", " "), " ") {
		r, size := utf8.DecodeRuneInString(w)
		switch {
		case size == 0:
			continue
		case r == utf8.RuneError:
			b.WriteString(w)
		default:
			b.WriteString(upper.String(w[:size]))
			b.WriteString(w[size:])
		}
	}
	return b.String()
}

// ValidName reports whether name may be used to look up a handler type. A
// valid name looks like a type name: it contains no '\', '/' or '.', and its
// first character is an upper-case letter. The empty name is
// invalid.
//
// This is the only trust check applied to request-derived handler names.
func ValidName(name string) bool {
	return handlerName.allow(name)
}

var handlerName = allOf(
	excludesAny(`\/.`),
	upperFirst(),
)
