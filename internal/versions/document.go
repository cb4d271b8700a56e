package versions

import (
	"encoding/json"
	"errors"

	docvererrors "docver.dev/docver/internal/errors"
)

// FileName is the name of the versions document on the deploy branch.
const FileName = "versions.json"

// entry is one element of the versions document.
type entry struct {
	Version string   `json:"version"`
	Title   title    `json:"title"`
	Aliases []string `json:"aliases"`
}

// title is the "title" field of an entry. The key must be present; a null
// value means the version has no title of its own.
type title struct {
	present bool
	value   string
}

// UnmarshalJSON implements json.Unmarshaler. It is called for null as well.
func (t *title) UnmarshalJSON(data []byte) error {
	t.present = true
	if string(data) == "null" {
		t.value = ""
		return nil
	}
	return json.Unmarshal(data, &t.value)
}

// MarshalJSON implements json.Marshaler.
func (t title) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Parse reads a versions document. Entries may come in any order, but a tag
// may only appear once and every entry needs a title key, which may be null.
func Parse(data []byte) (*Registry, error) {
	r := New()
	if err := r.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Document renders the registry as an indented versions document.
func (r *Registry) Document() ([]byte, error) {
	data, err := json.MarshalIndent(r.entries(), "", "  ")
	if err != nil {
		return nil, docvererrors.NewSerializationError("encode", err)
	}
	return append(data, '\n'), nil
}

// MarshalJSON implements json.Marshaler.
func (r *Registry) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.entries())
	if err != nil {
		return nil, docvererrors.NewSerializationError("encode", err)
	}
	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler. The receiver's contents are replaced.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var items []entry
	if err := json.Unmarshal(data, &items); err != nil {
		return docvererrors.NewSerializationError("decode", err)
	}

	versions := make(map[string]*Version, len(items))
	aliases := make(map[string]string)
	for _, item := range items {
		if !item.Title.present {
			return docvererrors.NewSerializationError("decode",
				errors.New("missing field `title` for version "+item.Version))
		}
		if _, ok := versions[item.Version]; ok {
			return docvererrors.NewDuplicateTagError(item.Version)
		}
		versions[item.Version] = &Version{Tag: item.Version, Title: item.Title.value}
		for _, alias := range item.Aliases {
			aliases[alias] = item.Version
		}
	}

	r.versions = versions
	r.aliases = aliases
	return nil
}

func (r *Registry) entries() []entry {
	entries := make([]entry, 0, len(r.versions))
	for v, aliases := range r.All() {
		entries = append(entries, entry{
			Version: v.Tag,
			Title:   title{present: true, value: v.DisplayTitle()},
			Aliases: aliases,
		})
	}
	return entries
}
