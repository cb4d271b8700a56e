package versions

import (
	"iter"
	"maps"
	"slices"
)

// Registry holds every deployed version keyed by tag, along with the aliases
// that point at them. An alias may point at a tag that is not deployed.
type Registry struct {
	versions map[string]*Version
	aliases  map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		versions: make(map[string]*Version),
		aliases:  make(map[string]string),
	}
}

// Len returns the number of versions.
func (r *Registry) Len() int {
	return len(r.versions)
}

// Upsert inserts or replaces the version for tag and points each alias at it.
// Aliases bound to other tags that are not listed are left alone.
func (r *Registry) Upsert(tag, title string, aliases ...string) *Version {
	v := &Version{Tag: tag, Title: title}
	r.versions[tag] = v
	for _, alias := range aliases {
		r.aliases[alias] = tag
	}
	return v
}

// Remove deletes the version for tag and every alias bound to it.
// It reports whether the tag was deployed.
func (r *Registry) Remove(tag string) bool {
	_, ok := r.versions[tag]
	delete(r.versions, tag)
	maps.DeleteFunc(r.aliases, func(_, target string) bool {
		return target == tag
	})
	return ok
}

// RemoveAlias unbinds alias and reports whether it was bound.
func (r *Registry) RemoveAlias(alias string) bool {
	_, ok := r.aliases[alias]
	delete(r.aliases, alias)
	return ok
}

// ByTag returns the version deployed under tag.
func (r *Registry) ByTag(tag string) (*Version, bool) {
	v, ok := r.versions[tag]
	return v, ok
}

// ByAlias returns the version alias currently resolves to.
func (r *Registry) ByAlias(alias string) (*Version, bool) {
	tag, ok := r.aliases[alias]
	if !ok {
		return nil, false
	}
	return r.ByTag(tag)
}

// AliasTarget returns the tag alias points at, whether or not that tag is deployed.
func (r *Registry) AliasTarget(alias string) (string, bool) {
	tag, ok := r.aliases[alias]
	return tag, ok
}

// Search returns the versions whose tag is tagOrAlias or that tagOrAlias
// resolves to as an alias, in listing order.
func (r *Registry) Search(tagOrAlias string) []*Version {
	var found []*Version
	for v := range r.All() {
		if v.Tag == tagOrAlias {
			found = append(found, v)
			continue
		}
		if target, ok := r.aliases[tagOrAlias]; ok && target == v.Tag {
			found = append(found, v)
		}
	}
	return found
}

// AliasesOf returns the aliases bound to tag, sorted by name.
func (r *Registry) AliasesOf(tag string) []string {
	aliases := []string{}
	for alias, target := range r.aliases {
		if target == tag {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}

// Sorted returns the versions in listing order.
func (r *Registry) Sorted() []*Version {
	sorted := slices.Collect(maps.Values(r.versions))
	slices.SortFunc(sorted, Compare)
	return sorted
}

// All yields each version in listing order together with the aliases bound to it.
// Aliases are looked up as the sequence advances, and the sequence can be
// ranged over any number of times.
func (r *Registry) All() iter.Seq2[*Version, []string] {
	return func(yield func(*Version, []string) bool) {
		for _, v := range r.Sorted() {
			if !yield(v, r.AliasesOf(v.Tag)) {
				return
			}
		}
	}
}
