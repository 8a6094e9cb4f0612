// Package roster resolves external identity keys against a guild's member list.
//
// Matching rules:
//   - the member's username must equal the key's name exactly (case-sensitive;
//     platform usernames are unique, so the platform's own equality is the reference)
//   - when the key carries a tag, the member's discriminator must equal it
//   - when several members qualify, the first in roster order wins
package roster

import (
	"warden/internal/guild"
	"warden/internal/identity"
)

// Result is either Matched (Member set) or Unmatched (Raw set), never both.
type Result struct {
	Member  *guild.Member
	Raw     string
	matched bool
}

// Matched reports whether a member was found.
func (r Result) Matched() bool {
	return r.matched
}

func matched(m guild.Member) Result {
	return Result{Member: &m, matched: true}
}

func unmatched(raw string) Result {
	return Result{Raw: raw}
}

// Resolve scans members in order. raw is carried into an Unmatched result.
func Resolve(key identity.Key, raw string, members []guild.Member) Result {
	for _, m := range members {
		if matches(key, m) {
			return matched(m)
		}
	}
	return unmatched(raw)
}

func matches(key identity.Key, m guild.Member) bool {
	if m.Username != key.Name() {
		return false
	}
	if tag, ok := key.Tag(); ok {
		return m.Discriminator == tag
	}
	return true
}

// Index answers Resolve queries in O(1) per name for a fixed roster snapshot.
type Index struct {
	byName map[string][]guild.Member
}

// NewIndex builds an index. Members sharing a username keep their roster order.
func NewIndex(members []guild.Member) *Index {
	byName := make(map[string][]guild.Member, len(members))
	for _, m := range members {
		byName[m.Username] = append(byName[m.Username], m)
	}
	return &Index{byName: byName}
}

// Resolve has the same semantics as the package-level Resolve.
func (idx *Index) Resolve(key identity.Key, raw string) Result {
	return Resolve(key, raw, idx.byName[key.Name()])
}
