// Package identity turns lines of an attendee export into identity keys.
//
// A line is `name` or `name#tag`. The first '#' splits name from tag; any further
// '#' characters belong to the tag, so `a#b#c` parses as name "a", tag "b#c".
// A trailing separator (`alice#`) is an explicit empty tag, not an unset one.
package identity

import "strings"

// Separator divides a name from its disambiguating tag.
const Separator = "#"

// Key identifies one external record. The zero value has an empty name and no tag.
type Key struct {
	name   string
	tag    string
	hasTag bool
}

// NewKey builds a key with an explicit tag.
func NewKey(name, tag string) Key {
	return Key{name: name, tag: tag, hasTag: true}
}

// NameOnly builds a key whose tag is unset.
func NameOnly(name string) Key {
	return Key{name: name}
}

// Parse is total: every input produces a Key.
func Parse(raw string) Key {
	name, tag, found := strings.Cut(raw, Separator)
	if !found {
		return NameOnly(raw)
	}
	return NewKey(name, tag)
}

// Name is the primary name.
func (k Key) Name() string {
	return k.name
}

// Tag returns the disambiguator and whether one was given.
func (k Key) Tag() (string, bool) {
	return k.tag, k.hasTag
}

func (k Key) String() string {
	if k.hasTag {
		return k.name + Separator + k.tag
	}
	return k.name
}
