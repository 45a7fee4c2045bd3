package works

import "strings"

// LookupKind says which column a path token is matched against.
type LookupKind uint8

const (
	ByID LookupKind = iota
	BySlug
)

func (k LookupKind) Column() string {
	if k == BySlug {
		return "slug"
	}
	return "id"
}

type Lookup struct {
	Kind  LookupKind
	Token string
}

func (l Lookup) Column() string { return l.Kind.Column() }

// ResolveIdentifier treats a token containing a hyphen as a primary id and
// anything else as a slug. Generated ids are UUIDs, so they always match the
// first branch; a hyphenated slug such as "my-slug" is also routed to the id
// lookup and will not be found by slug. Callers that know what they hold
// should use ResolveAs.
func ResolveIdentifier(token string) Lookup {
	if strings.Contains(token, "-") {
		return Lookup{Kind: ByID, Token: token}
	}
	return Lookup{Kind: BySlug, Token: token}
}

// ResolveAs honours an explicit kind ("id" or "slug") and falls back to
// ResolveIdentifier when by is empty. ok is false for any other kind.
func ResolveAs(token, by string) (l Lookup, ok bool) {
	switch strings.ToLower(strings.TrimSpace(by)) {
	case "":
		return ResolveIdentifier(token), true
	case "id":
		return Lookup{Kind: ByID, Token: token}, true
	case "slug":
		return Lookup{Kind: BySlug, Token: token}, true
	}
	return Lookup{}, false
}
