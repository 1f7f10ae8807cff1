// Package playback tracks which catalog item is playing and decides what
// plays next on selection, offset navigation and natural end of media.
package playback

import (
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/catalog"
)

// DefaultPlaceholder is shown for items without a name.
const DefaultPlaceholder = "Noname"

// Controller is the playlist navigation state machine. It is either Idle or
// Playing one item of its catalog. Every transition goes through Select, and
// every method is safe for concurrent use: transitions are serialized, sink
// calls included.
type Controller struct {
	mu sync.Mutex

	catalog     *catalog.Catalog
	media       MediaSink
	view        PresentationSink
	placeholder string
	log         *zap.Logger

	current *catalog.Item

	subs   []*Subscription
	subsMu sync.Mutex
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPlaceholder sets the label shown for items with an empty name.
func WithPlaceholder(label string) Option {
	return func(c *Controller) { c.placeholder = label }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// NewController creates an idle controller over cat.
func NewController(cat *catalog.Catalog, media MediaSink, view PresentationSink, opts ...Option) *Controller {
	c := &Controller{
		catalog:     cat,
		media:       media,
		view:        view,
		placeholder: DefaultPlaceholder,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the catalog the controller navigates.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Select plays item, or stops playback when item is nil. Selecting while an
// item is active replaces it. Items that do not belong to the catalog are
// ignored.
func (c *Controller) Select(item *catalog.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item == nil {
		c.selectLocked(nil)
		return
	}
	i := c.catalog.IndexOf(item.ID)
	if i == catalog.NotFound {
		c.log.Warn("ignoring selection of unknown item",
			zap.String("id", string(item.ID)),
			zap.String("name", item.Name))
		return
	}
	c.selectIndexLocked(i)
}

// SelectIndex plays the item at position i. Out-of-range positions are ignored.
func (c *Controller) SelectIndex(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.catalog.At(i); !ok {
		c.log.Debug("ignoring selection out of range", zap.Int("index", i))
		return
	}
	c.selectIndexLocked(i)
}

// Stop returns to Idle.
func (c *Controller) Stop() {
	c.Select(nil)
}

// Navigate moves playback by offset positions. It does nothing when idle or
// when the current item is not in the catalog; running off either end stops.
func (c *Controller) Navigate(offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigateLocked(offset)
}

// Next plays the following item, or stops after the last one.
func (c *Controller) Next() {
	c.Navigate(1)
}

// Previous plays the preceding item, or stops before the first one.
func (c *Controller) Previous() {
	c.Navigate(-1)
}

// Ended handles the natural end of the current media. It has exactly the
// effect of Next.
func (c *Controller) Ended() {
	c.Next()
}

// EndedFor is Ended for the media at url. It is ignored unless url is the
// current item's: the end of a source that was since replaced or stopped
// must not move past the user's selection.
func (c *Controller) EndedFor(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.URL != url {
		c.log.Debug("ignoring end of replaced media", zap.String("url", url))
		return
	}
	c.navigateLocked(1)
}

// PlayAll plays the first item. It does nothing on an empty catalog.
func (c *Controller) PlayAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog.IsEmpty() {
		return
	}
	c.selectIndexLocked(0)
}

// Current returns a copy of the playing item, or nil when idle.
func (c *Controller) Current() *catalog.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	cur := *c.current
	return &cur
}

// Index returns the catalog position of the playing item, or
// catalog.NotFound when idle.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// HasNext reports whether Next would play another item.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked()
	return i != catalog.NotFound && i+1 < c.catalog.Len()
}

// HasPrevious reports whether Previous would play another item.
func (c *Controller) HasPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked() > 0
}

func (c *Controller) navigateLocked(offset int) {
	i := c.indexLocked()
	if i == catalog.NotFound {
		return
	}
	target := i + offset
	if _, ok := c.catalog.At(target); !ok {
		c.selectLocked(nil)
		return
	}
	c.selectIndexLocked(target)
}

func (c *Controller) selectIndexLocked(i int) {
	item, _ := c.catalog.At(i)
	c.selectLocked(&item)
}

// selectLocked is the only place where current changes.
func (c *Controller) selectLocked(item *catalog.Item) {
	prev := c.current
	prevState := c.stateLocked()

	if item == nil {
		c.current = nil
		c.view.SetLabel("")
		c.view.SetActive(false)
		c.media.SetSource("")
	} else {
		c.current = item
		label := item.Name
		if label == "" {
			label = c.placeholder
		}
		c.view.SetLabel(label)
		c.view.SetActive(true)
		c.media.SetSource(item.URL)
		c.media.Play()
	}

	c.log.Debug("selection changed",
		zap.Stringer("state", c.stateLocked()),
		zap.Int("index", c.indexLocked()))
	c.notify(prevState, prev)
}

func (c *Controller) indexLocked() int {
	if c.current == nil {
		return catalog.NotFound
	}
	return c.catalog.IndexOf(c.current.ID)
}

func (c *Controller) stateLocked() State {
	if c.current == nil {
		return StateIdle
	}
	return StatePlaying
}

func (c *Controller) notify(prevState State, prev *catalog.Item) {
	cur := c.stateLocked()
	itemEv := ItemChange{
		Previous: copyItem(prev),
		Current:  copyItem(c.current),
		Index:    c.indexLocked(),
	}

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, sub := range c.subs {
		if prevState != cur {
			sub.sendState(StateChange{Previous: prevState, Current: cur})
		}
		sub.sendItem(itemEv)
	}
}

func copyItem(it *catalog.Item) *catalog.Item {
	if it == nil {
		return nil
	}
	cp := *it
	return &cp
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close ends all subscriptions. The controller stays usable.
func (c *Controller) Close() error {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	return nil
}
