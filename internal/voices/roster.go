// Package voices resolves the set of reference voices a benchmark run
// tests against.
package voices

import "strings"

// Reference identifies a voice model for synthesis. The zero value is the
// Default sentinel, meaning no reference voice is passed to the TTS engine.
type Reference struct {
	ID string
}

// Default is the "no reference voice" sentinel.
var Default = Reference{}

// IsDefault reports whether r is the no-reference sentinel.
func (r Reference) IsDefault() bool {
	return r.ID == ""
}

// Label returns the voice model ID, or "default" for the sentinel.
// Labels are used in result records and audio artifact paths.
func (r Reference) Label() string {
	if r.IsDefault() {
		return "default"
	}
	return r.ID
}

// defaultReferenceIDs are the voice models tested when the roster is not
// configured explicitly.
var defaultReferenceIDs = []string{
	"802e3bc2b27e49c2995d23ef70e6ac89", // Energetic Male
	"b545c585f631496c914815291da4e893", // Friendly Women
	"8ba9b8b845e342da9d511d4e0c2ff733", // E-girl
}

// RosterConfig selects which voices a run covers.
type RosterConfig struct {
	// NoReference forces a single-entry roster containing only the
	// default-voice sentinel.
	NoReference bool

	// IDs overrides the built-in reference voices. Order is preserved and
	// duplicates are kept as configured.
	IDs []string
}

// ParseIDs splits a comma-separated voice ID list, trimming whitespace
// and dropping empty entries. Used for flag and environment values.
func ParseIDs(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Roster returns the ordered, non-empty list of voices to test.
func Roster(cfg RosterConfig) []Reference {
	if cfg.NoReference {
		return []Reference{Default}
	}

	ids := cfg.IDs
	if len(ids) == 0 {
		ids = defaultReferenceIDs
	}
	refs := make([]Reference, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, Reference{ID: id})
	}
	return refs
}
