package core

// listener is one entry in a subscription's nested-callback list. Entries
// form a doubly linked list so that unsubscribing from inside a notification
// round unlinks in O(1) without disturbing the traversal cursor.
type listener struct {
	callback   func()
	prev, next *listener
}

// listenerCollection holds a subscription's directly nested callbacks in
// registration order. Not safe for concurrent use; the binding layer runs on
// the host's single goroutine.
type listenerCollection struct {
	first, last *listener

	// gen invalidates outstanding unsubscribes across clear: a closure from
	// an earlier generation must not touch the current list's links.
	gen uint64
}

// subscribe appends cb and returns its unsubscribe. The unsubscribe is
// idempotent and safe to call from within notify: the entry's own next link
// survives unlinking, so the in-flight traversal continues with the
// remaining callbacks.
func (c *listenerCollection) subscribe(cb func()) func() {
	l := &listener{callback: cb, prev: c.last}
	if c.last != nil {
		c.last.next = l
	} else {
		c.first = l
	}
	c.last = l

	gen := c.gen
	subscribed := true
	return func() {
		if !subscribed || gen != c.gen {
			return
		}
		subscribed = false

		if l.next != nil {
			l.next.prev = l.prev
		} else {
			c.last = l.prev
		}
		if l.prev != nil {
			l.prev.next = l.next
		} else {
			c.first = l.next
		}
	}
}

// notify invokes every currently attached callback in registration order.
// Callbacks added during the round are reached; callbacks removed during the
// round are skipped if not yet visited.
func (c *listenerCollection) notify() {
	for l := c.first; l != nil; l = l.next {
		l.callback()
	}
}

// clear drops all entries and invalidates their unsubscribes. A stale
// unsubscribe issued before the clear becomes a no-op instead of relinking
// cleared entries into whatever list is built afterwards.
func (c *listenerCollection) clear() {
	c.first = nil
	c.last = nil
	c.gen++
}
