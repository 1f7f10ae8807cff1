// Package catalog builds the ordered list of playable entries found in a
// directory listing page. A catalog is built once and never mutated.
package catalog

import "github.com/google/uuid"

// NotFound is returned by IndexOf when an item is not part of the catalog.
const NotFound = -1

// ItemID identifies an item independently of its name, URL or position.
// IDs are assigned when the catalog is built.
type ItemID string

// Item is one playable entry.
type Item struct {
	ID   ItemID
	Name string
	URL  string
}

// Entry is the raw data an item is built from.
type Entry struct {
	Name string
	URL  string
}

// Catalog is an immutable, ordered sequence of items.
type Catalog struct {
	items []Item
	index map[ItemID]int
}

// New builds a catalog from entries, keeping their order and assigning each
// a fresh ID. Duplicate names and URLs are kept as distinct items.
func New(entries ...Entry) *Catalog {
	c := &Catalog{
		items: make([]Item, 0, len(entries)),
		index: make(map[ItemID]int, len(entries)),
	}
	for _, e := range entries {
		id := ItemID(uuid.NewString())
		c.index[id] = len(c.items)
		c.items = append(c.items, Item{ID: id, Name: e.Name, URL: e.URL})
	}
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// IsEmpty returns true if the catalog has no items.
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// At returns the item at position i, or false if i is out of range.
func (c *Catalog) At(i int) (Item, bool) {
	if i < 0 || i >= c.Len() {
		return Item{}, false
	}
	return c.items[i], true
}

// First returns the first item, or false if the catalog is empty.
func (c *Catalog) First() (Item, bool) {
	return c.At(0)
}

// IndexOf returns the position of the item with the given ID, or NotFound.
func (c *Catalog) IndexOf(id ItemID) int {
	if c == nil {
		return NotFound
	}
	if i, ok := c.index[id]; ok {
		return i
	}
	return NotFound
}

// Contains reports whether the item belongs to this catalog.
func (c *Catalog) Contains(id ItemID) bool {
	return c.IndexOf(id) != NotFound
}

// Items returns a copy of all items in order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
