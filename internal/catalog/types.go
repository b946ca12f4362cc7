package catalog

// Entry is a single emotion with its category and test phrases.
// Entries are immutable after the catalog is loaded.
type Entry struct {
	// Tag is the emotion tag as consumed by the TTS engine, without
	// parentheses (e.g. "happy").
	Tag string

	// Category is the taxonomy section the tag was declared in
	// (e.g. "basic_emotions").
	Category string

	// Phrases are the test phrases for this emotion, in declaration order.
	// Always non-empty for a loaded catalog.
	Phrases []string
}

// Item is one flattened (emotion, phrase) pair from the catalog.
type Item struct {
	Tag       string
	Phrase    string
	PhraseIdx int // 1-based index within the emotion's phrase list
	Category  string
}

// Catalog holds the loaded emotion taxonomy in declaration order.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// Len returns the number of emotions in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all emotions in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry for tag, if present.
func (c *Catalog) Get(tag string) (Entry, bool) {
	i, ok := c.index[tag]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Phrases returns the test phrases for tag. It returns an
// UnknownEmotionError if the tag is not in the catalog.
func (c *Catalog) Phrases(tag string) ([]string, error) {
	e, ok := c.Get(tag)
	if !ok {
		return nil, &UnknownEmotionError{Tag: tag}
	}
	out := make([]string, len(e.Phrases))
	copy(out, e.Phrases)
	return out, nil
}

// All returns one Item per phrase of every emotion, flattened in
// catalog order with 1-based phrase indices.
func (c *Catalog) All() []Item {
	var items []Item
	for _, e := range c.entries {
		for i, p := range e.Phrases {
			items = append(items, Item{
				Tag:       e.Tag,
				Phrase:    p,
				PhraseIdx: i + 1,
				Category:  e.Category,
			})
		}
	}
	return items
}

// UnknownEmotionError is returned when a tag is not in the catalog.
type UnknownEmotionError struct {
	Tag string
}

func (e *UnknownEmotionError) Error() string {
	return "unknown emotion: " + e.Tag
}
