package webdispatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// nameRule is a predicate over untrusted handler names. Rules are cheap and
// composable so the allowlist reads as a single expression.
type nameRule interface {
	allow(name string) bool
}

// excludesAny rejects names containing any of the given characters.
func excludesAny(chars string) nameRule {
	return excludes{chars: chars}
}

type excludes struct {
	chars string
}

func (r excludes) allow(name string) bool {
	return !strings.ContainsAny(name, r.chars)
}

// upperFirst accepts names starting with an upper-case letter that differs
// from its lower-case form. Digits, symbols such as 'Ⓐ', letter numbers such
// as 'Ⅰ' and the empty name are rejected.
func upperFirst() nameRule {
	return first{}
}

type first struct{}

func (first) allow(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}

// allOf matches when every rule matches.
func allOf(rules ...nameRule) nameRule {
	return all{rules: rules}
}

type all struct {
	rules []nameRule
}

func (r all) allow(name string) bool {
	for _, rule := range r.rules {
		if !rule.allow(name) {
			return false
		}
	}
	return true
}
