// Package catalog reads object names and definitions from a database
// session.
package catalog

import (
	"strings"
)

// Kind is the category of a backed-up database object.
type Kind string

// Constants enumerating the object kinds that can be backed up.
const (
	Package   Kind = "PACKAGE"
	Procedure Kind = "PROCEDURE"
	Function  Kind = "FUNCTION"
)

// Kinds lists every valid kind.
var Kinds = []Kind{Package, Procedure, Function}

// ParseKind normalizes s to upper case and checks it against the valid kinds.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case Package, Procedure, Function:
		return k, nil
	}
	return "", InvalidKindError.New("%q is not one of PACKAGE, PROCEDURE, FUNCTION", s)
}

// Lower returns the kind in lower case, as used in directory names.
func (k Kind) Lower() string {
	return strings.ToLower(string(k))
}

func (k Kind) String() string { return string(k) }

// NormalizeName upper-cases an object name and rejects empty names and
// names that are not a single path element.
func NormalizeName(s string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(s))
	if n == "" {
		return "", InvalidNameError.New("object name is empty")
	}
	if err := CheckPathElement(n); err != nil {
		return "", err
	}
	return n, nil
}

// CheckPathElement rejects names that would leave their folder when joined
// into a snapshot path. Quoted identifiers may contain any character.
func CheckPathElement(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return InvalidNameError.New("object name %q is not a valid folder name", name)
	case strings.ContainsAny(name, "/\\\x00"):
		return InvalidNameError.New("object name %q contains a path separator", name)
	}
	return nil
}
