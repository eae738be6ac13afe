// Package disaster maps free-text hashtags and keywords to canonical
// disaster identities. A Registry is an explicitly constructed instance
// passed to whichever component needs alias resolution; iteration order is
// registration order, which callers rely on for reproducible tie-breaks.
package disaster

import "strings"

// Type is a canonical disaster identity with its known aliases.
type Type struct {
	name     string
	aliases  []string
	aliasSet map[string]struct{}
}

// Name returns the canonical lowercase name.
func (t *Type) Name() string { return t.name }

// Aliases returns the normalized aliases in registration order.
// The canonical name is always the first entry.
func (t *Type) Aliases() []string {
	out := make([]string, len(t.aliases))
	copy(out, t.aliases)

	return out
}

// Matches reports whether the keyword normalizes to one of the aliases.
func (t *Type) Matches(keyword string) bool {
	if keyword == "" {
		return false
	}

	_, ok := t.aliasSet[NormalizeAlias(keyword)]

	return ok
}

func (t *Type) addAlias(alias string) {
	normalized := NormalizeAlias(alias)
	if normalized == "" {
		return
	}

	if _, ok := t.aliasSet[normalized]; ok {
		return
	}

	t.aliases = append(t.aliases, normalized)
	t.aliasSet[normalized] = struct{}{}
}

// NormalizeAlias strips a leading '#', lowercases and trims the input.
func NormalizeAlias(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.TrimPrefix(s, "#")
}

// Registry holds disaster identities in registration order. A flat
// alias index keeps exact lookups constant-time; alias collisions stay
// with the earliest registration.
type Registry struct {
	order   []string
	types   map[string]*Type
	aliases map[string]*Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[string]*Type),
		aliases: make(map[string]*Type),
	}
}

// NewDefaultRegistry seeds the default disaster set.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("yagi")
	r.AddAlias("yagi", "#yagi")
	r.AddAlias("yagi", "typhoon")
	r.AddAlias("yagi", "#typhoon")

	r.Register("matmo")
	r.AddAlias("matmo", "#matmo")

	r.Register("flood")
	r.AddAlias("flood", "#bualoi")
	r.AddAlias("flood", "bualoi")
	r.AddAlias("flood", "#flood")

	r.Register("disaster")
	r.AddAlias("disaster", "#disaster")

	r.Register("aid")
	r.AddAlias("aid", "#aid")
	r.AddAlias("aid", "relief")
	r.AddAlias("aid", "#relief")

	return r
}

// Register creates (or returns) the identity for the given name. The alias
// set seeds with the normalized name itself.
func (r *Registry) Register(name string) *Type {
	normalized := NormalizeAlias(name)
	if normalized == "" {
		return nil
	}

	if existing, ok := r.types[normalized]; ok {
		return existing
	}

	t := &Type{
		name:     normalized,
		aliases:  []string{normalized},
		aliasSet: map[string]struct{}{normalized: {}},
	}

	r.types[normalized] = t
	r.order = append(r.order, normalized)

	if _, taken := r.aliases[normalized]; !taken {
		r.aliases[normalized] = t
	}

	return t
}

// GetOrCreate registers the name on first use.
func (r *Registry) GetOrCreate(name string) *Type {
	return r.Register(name)
}

// AddAlias attaches a further alias to the named identity. It is a no-op
// when the identity is unknown. An alias already claimed by an earlier
// registration keeps pointing there.
func (r *Registry) AddAlias(name, alias string) {
	t, ok := r.types[NormalizeAlias(name)]
	if !ok {
		return
	}

	t.addAlias(alias)

	normalized := NormalizeAlias(alias)
	if normalized == "" {
		return
	}

	if _, taken := r.aliases[normalized]; !taken {
		r.aliases[normalized] = t
	}
}

// Get returns the identity with the given canonical name.
func (r *Registry) Get(name string) (*Type, bool) {
	t, ok := r.types[NormalizeAlias(name)]

	return t, ok
}

// FindByExactAlias looks the keyword up across all identities' alias sets
// via the flat index, so the hit cost does not grow with the number of
// registered identities.
func (r *Registry) FindByExactAlias(keyword string) (*Type, bool) {
	normalized := NormalizeAlias(keyword)
	if normalized == "" {
		return nil, false
	}

	t, ok := r.aliases[normalized]

	return t, ok
}

// FindInText returns the first registered identity whose canonical name or
// any alias is a case-insensitive substring of the content. Identities are
// scanned in registration order, so ties resolve to the earliest
// registration; callers that need reproducible output depend on this.
func (r *Registry) FindInText(content string) (*Type, bool) {
	if content == "" {
		return nil, false
	}

	lower := strings.ToLower(content)

	for _, name := range r.order {
		t := r.types[name]
		for _, alias := range t.aliases {
			if strings.Contains(lower, alias) {
				return t, true
			}
		}
	}

	return nil, false
}

// Names returns all canonical names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}
