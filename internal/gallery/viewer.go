package gallery

import (
	"context"
	"log/slog"
	"time"
)

const (
	// CopyFeedbackDuration is how long the "link copied" indicator stays on.
	CopyFeedbackDuration = 2000 * time.Millisecond
	// ShareAutoCloseDelay is how long the share menu stays open after a
	// successful copy.
	ShareAutoCloseDelay = 1000 * time.Millisecond
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Saver fetches an item's image and stores it locally, returning the saved
// path.
type Saver interface {
	Save(ctx context.Context, item Item) (string, error)
}

// DownloadJob saves one image. It captures the item by value and never
// touches viewer state, so hosts may run it on any goroutine.
type DownloadJob func(ctx context.Context) (string, error)

// ViewerState is a snapshot of the lightbox state machine. Current is only
// meaningful while Open is true.
type ViewerState struct {
	Open          bool
	Current       Item
	Zoomed        bool
	ShareMenuOpen bool
	CopyFeedback  bool
}

// ViewerOptions wires the viewer to its host.
type ViewerOptions struct {
	Scheduler Scheduler
	Input     InputSource
	Clipboard Clipboard
	Saver     Saver
	// Link returns the shareable URL for an item.
	Link   func(Item) string
	Logger *slog.Logger
}

// Viewer is the lightbox controller. It navigates over the ordered list the
// host supplies through SetItems.
type Viewer struct {
	opts ViewerOptions
	log  *slog.Logger

	items []Item
	index int
	state ViewerState

	content    Rect
	sharePanel Rect

	feedbackTimer TimerID
	shareTimer    TimerID
	unsubscribe   func()
}

// NewViewer returns a closed viewer.
func NewViewer(opts ViewerOptions) *Viewer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewManualScheduler()
	}
	return &Viewer{opts: opts, log: log, index: -1}
}

// State returns a copy of the current state.
func (v *Viewer) State() ViewerState {
	return v.state
}

// IsOpen reports whether the viewer is showing an item.
func (v *Viewer) IsOpen() bool {
	return v.state.Open
}

// Index returns the position of the current item in the ordered list, or
// -1 when closed or when the item is not in the list.
func (v *Viewer) Index() int {
	if !v.state.Open {
		return -1
	}
	return v.index
}

// Len returns the length of the ordered list.
func (v *Viewer) Len() int {
	return len(v.items)
}

// SetItems replaces the ordered list. If the open item is no longer part of
// it (it was hidden or removed) the viewer closes.
func (v *Viewer) SetItems(items []Item) {
	v.items = append(v.items[:0:0], items...)
	if !v.state.Open {
		return
	}
	v.index = indexOf(v.items, v.state.Current.ID)
	if v.index < 0 {
		v.log.Debug("viewer item left the list, closing", "id", v.state.Current.ID)
		v.Close()
	}
}

// Open shows item. Zoom and the share menu start closed. Opening an item
// that is not in the list is allowed; it simply has no neighbours.
func (v *Viewer) Open(item Item) {
	if !v.state.Open {
		v.subscribe()
	}
	v.state.Open = true
	v.state.Current = item
	v.state.Zoomed = false
	v.state.ShareMenuOpen = false
	v.index = indexOf(v.items, item.ID)
}

// Close returns to the closed state, cancelling pending timers and
// releasing the input subscription.
func (v *Viewer) Close() {
	if !v.state.Open {
		return
	}
	v.cancelTimers()
	v.release()
	v.state = ViewerState{}
	v.index = -1
}

// Teardown is Close for hosts that are shutting down; it is safe to call on
// a closed viewer.
func (v *Viewer) Teardown() {
	v.cancelTimers()
	v.release()
	v.state = ViewerState{}
	v.index = -1
}

func (v *Viewer) HasNext() bool {
	return v.state.Open && v.index >= 0 && v.index < len(v.items)-1
}

func (v *Viewer) HasPrevious() bool {
	return v.state.Open && v.index > 0
}

// Next advances to the following item. Zoom is kept; the share menu closes.
func (v *Viewer) Next() {
	if !v.HasNext() {
		return
	}
	v.moveTo(v.index + 1)
}

// Previous is the mirror of Next.
func (v *Viewer) Previous() {
	if !v.HasPrevious() {
		return
	}
	v.moveTo(v.index - 1)
}

func (v *Viewer) moveTo(index int) {
	v.index = index
	v.state.Current = v.items[index]
	v.state.ShareMenuOpen = false
}

func (v *Viewer) ToggleZoom() {
	if !v.state.Open {
		return
	}
	v.state.Zoomed = !v.state.Zoomed
}

func (v *Viewer) ToggleShareMenu() {
	if !v.state.Open {
		return
	}
	v.state.ShareMenuOpen = !v.state.ShareMenuOpen
}

// SetRegions records where the host drew the viewer content and the share
// panel, for backdrop and outside-click detection. An empty content rect
// disables backdrop closing.
func (v *Viewer) SetRegions(content, sharePanel Rect) {
	v.content = content
	v.sharePanel = sharePanel
}

// CopyLink copies the current item's link. On success the feedback flag is
// raised for CopyFeedbackDuration and the share menu closes after
// ShareAutoCloseDelay; calling again restarts both windows. Clipboard
// failures are logged and leave the state untouched.
func (v *Viewer) CopyLink() {
	if !v.state.Open || v.opts.Clipboard == nil {
		return
	}
	link := v.link(v.state.Current)
	if err := v.opts.Clipboard.WriteAll(link); err != nil {
		v.log.Warn("copy link", "id", v.state.Current.ID, "error", err)
		return
	}
	v.state.CopyFeedback = true

	v.opts.Scheduler.Cancel(v.feedbackTimer)
	v.feedbackTimer = v.opts.Scheduler.ScheduleOnce(CopyFeedbackDuration, func() {
		v.feedbackTimer = 0
		v.state.CopyFeedback = false
	})

	v.opts.Scheduler.Cancel(v.shareTimer)
	v.shareTimer = v.opts.Scheduler.ScheduleOnce(ShareAutoCloseDelay, func() {
		v.shareTimer = 0
		v.state.ShareMenuOpen = false
	})
}

// Download returns a job that saves the current item's image, or nil when
// the viewer is closed. Failures are logged by the job itself.
func (v *Viewer) Download() DownloadJob {
	if !v.state.Open || v.opts.Saver == nil {
		return nil
	}
	item := v.state.Current
	saver := v.opts.Saver
	log := v.log
	return func(ctx context.Context) (string, error) {
		path, err := saver.Save(ctx, item)
		if err != nil {
			log.Warn("download image", "id", item.ID, "image", item.Image, "error", err)
			return "", err
		}
		log.Info("downloaded image", "id", item.ID, "path", path)
		return path, nil
	}
}

func (v *Viewer) link(item Item) string {
	if v.opts.Link != nil {
		return v.opts.Link(item)
	}
	return item.Image
}

func (v *Viewer) subscribe() {
	if v.opts.Input == nil || v.unsubscribe != nil {
		return
	}
	v.unsubscribe = v.opts.Input.Subscribe(v.handleInput)
}

func (v *Viewer) release() {
	if v.unsubscribe == nil {
		return
	}
	v.unsubscribe()
	v.unsubscribe = nil
}

func (v *Viewer) cancelTimers() {
	v.opts.Scheduler.Cancel(v.feedbackTimer)
	v.opts.Scheduler.Cancel(v.shareTimer)
	v.feedbackTimer = 0
	v.shareTimer = 0
}

func (v *Viewer) handleInput(ev InputEvent) {
	if !v.state.Open {
		return
	}
	switch ev := ev.(type) {
	case KeyEvent:
		v.handleKey(ev.Key)
	case PointerDownEvent:
		v.handlePointerDown(ev.X, ev.Y)
	}
}

func (v *Viewer) handleKey(key string) {
	switch key {
	case "esc":
		v.Close()
	case "left":
		if v.HasPrevious() {
			v.Previous()
		}
	case "right":
		if v.HasNext() {
			v.Next()
		}
	}
}

func (v *Viewer) handlePointerDown(x, y int) {
	if v.state.ShareMenuOpen && !v.sharePanel.Contains(x, y) {
		v.state.ShareMenuOpen = false
	}
	if !v.content.Empty() && !v.content.Contains(x, y) {
		v.Close()
	}
}
