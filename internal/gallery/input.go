package gallery

// InputEvent is a key press or pointer-down delivered by the host.
type InputEvent interface {
	isInputEvent()
}

// KeyEvent carries a key name in Bubble Tea notation ("esc", "left",
// "right", "z", ...).
type KeyEvent struct {
	Key string
}

// PointerDownEvent carries the cell coordinates of a mouse press.
type PointerDownEvent struct {
	X, Y int
}

func (KeyEvent) isInputEvent()         {}
func (PointerDownEvent) isInputEvent() {}

// InputSource is the capability the host injects so the viewer can listen
// for keyboard and pointer events while it is open. The returned function
// releases the subscription; calling it more than once is harmless.
type InputSource interface {
	Subscribe(handler func(InputEvent)) (unsubscribe func())
}

// Rect is an axis-aligned region in host cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle. An empty
// rectangle contains nothing.
func (r Rect) Contains(x, y int) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// EventBus is a synchronous InputSource. The host calls Dispatch from its
// event loop and every live subscriber is invoked in subscription order.
type EventBus struct {
	nextID   int
	handlers []busHandler
}

type busHandler struct {
	id int
	fn func(InputEvent)
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Subscribe(handler func(InputEvent)) func() {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, busHandler{id: id, fn: handler})
	return func() {
		for i, h := range b.handlers {
			if h.id == id {
				b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to all subscribers and reports whether anyone was
// listening.
func (b *EventBus) Dispatch(ev InputEvent) bool {
	if len(b.handlers) == 0 {
		return false
	}
	// Handlers may unsubscribe while running (Escape closes the viewer).
	snapshot := append([]busHandler(nil), b.handlers...)
	for _, h := range snapshot {
		h.fn(ev)
	}
	return true
}

// Subscribers returns the number of live subscriptions.
func (b *EventBus) Subscribers() int {
	return len(b.handlers)
}
