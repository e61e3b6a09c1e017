// Package cppname implements the string-level machinery for resolving C++
// type names that carry an inline ABI version namespace: version insertion
// (outer name and nested template arguments), matching-bracket scanning, and
// the template-prefix rule used by printer dispatch.
//
// Everything here is pure string manipulation; no oracle lookups happen at
// this layer.
package cppname

import (
	"strings"

	"github.com/probeops/swisskit/pkg/types"
)

// MatchBrackets returns the index of the closing bracket that matches the
// first opening bracket in s, or -1 if s contains no opening bracket or the
// brackets are unbalanced.
//
// Example: MatchBrackets("Foo<T>::iterator<U>") == 5.
func MatchBrackets(s string) int {
	start := strings.IndexByte(s, '<')
	if start == -1 {
		return -1
	}

	depth := 1
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		}
		if depth == 0 {
			return i
		}
	}
	return -1
}

// SplitTemplateArgs splits a template argument list at depth-zero commas.
// Pieces are returned verbatim, including any surrounding whitespace, so that
// rejoining with "," reproduces the input exactly.
func SplitTemplateArgs(args string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, args[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, args[last:])
}

// InsertVersionOuter inserts the inline version namespace after the first
// occurrence of the root namespace token anywhere in name, mirroring how the
// debug metadata spells the outer container name. Nested template arguments
// are left untouched.
//
// Fails with ErrMalformedName when the root token does not occur at all:
// that indicates a caller bug, not an ABI mismatch, and must not be hidden
// inside a generic not-found path.
func InsertVersionOuter(name, root, version string) (string, error) {
	i := strings.Index(name, root)
	if i == -1 {
		return "", types.NewError(types.ErrKindMalformedName,
			"no "+strings.TrimSuffix(root, "::")+" namespace found in "+name, nil)
	}
	end := i + len(root)
	return name[:end] + version + "::" + name[end:], nil
}

// InsertVersion fully re-qualifies name with the inline version namespace:
// the outer name and every bracketed template argument that itself contains
// the root token get the version inserted. Nested arguments need their own
// insertion because inserting into the outer name alone does not re-qualify
// them.
//
// Fails with ErrMalformedName when the root token does not occur in name.
func InsertVersion(name, root, version string) (string, error) {
	if !strings.Contains(name, root) {
		return "", types.NewError(types.ErrKindMalformedName,
			"no "+strings.TrimSuffix(root, "::")+" namespace found in "+name, nil)
	}
	return insertVersion(name, root, version), nil
}

func insertVersion(s, root, version string) string {
	open := strings.IndexByte(s, '<')
	closing := MatchBrackets(s)
	if open == -1 || closing == -1 {
		i := strings.Index(s, root)
		if i == -1 {
			return s
		}
		end := i + len(root)
		return s[:end] + version + "::" + s[end:]
	}

	head := insertVersion(s[:open], root, version)

	args := SplitTemplateArgs(s[open+1 : closing])
	for i, arg := range args {
		if strings.Contains(arg, root) {
			args[i] = insertVersion(arg, root, version)
		}
	}

	// Anything past the matching bracket (e.g. a member suffix) is kept
	// verbatim; only the container spelling itself is re-qualified.
	return head + "<" + strings.Join(args, ",") + s[closing:]
}

// StripVersion removes every occurrence of the inline version namespace from
// name, recovering the user-facing spelling.
func StripVersion(name, version string) string {
	return strings.ReplaceAll(name, version+"::", "")
}

// MatchesTemplatePrefix reports whether name is an instantiation of exactly
// the templated type named by prefix. The text before the first '<' must
// equal prefix and the bracket matching that '<' must close the whole name,
// which excludes member types such as "Map<T>::iterator" as well as
// longer-named siblings such as "MapExtra<T>".
func MatchesTemplatePrefix(name, prefix string) bool {
	closing := MatchBrackets(name)
	if closing == -1 || closing != len(name)-1 {
		return false
	}
	open := strings.IndexByte(name, '<')
	return name[:open] == prefix
}
