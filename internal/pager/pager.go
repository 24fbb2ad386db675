// Package pager owns the current page of an item list and derives everything
// a view needs from it: the visible slice, the total page count, and a compact
// row of page-number labels around the current page.
//
// Nothing here returns an error. Page requests outside the valid range are
// clamped, and an empty list simply has no pages and no labels.
package pager

import (
	"strconv"

	"github.com/idilsaglam/todoview/internal/model"
)

const (
	// PageSize is the number of items shown per page.
	PageSize = 10
	// WindowSize is the maximum number of consecutive page numbers in a label row.
	WindowSize = 5
)

// Source is what the controller needs from an item collection.
type Source interface {
	Count() int
	Slice(offset, limit int) []model.Item
}

// Label is one entry of the page-number row: a page number or an ellipsis.
type Label struct {
	Page int // 0 marks an ellipsis
}

// Ellipsis marks a run of omitted page numbers.
var Ellipsis = Label{}

// IsEllipsis reports whether l stands for skipped pages.
func (l Label) IsEllipsis() bool { return l.Page == 0 }

func (l Label) String() string {
	if l.IsEllipsis() {
		return "..."
	}
	return strconv.Itoa(l.Page)
}

// Controller tracks the current page over a Source.
// Derived values are recomputed from the source's count on every call.
type Controller struct {
	src     Source
	current int
}

// New returns a controller positioned on page 1.
func New(src Source) *Controller {
	return &Controller{src: src, current: 1}
}

// CurrentPage is the 1-based page being shown.
func (c *Controller) CurrentPage() int { return c.current }

// TotalPages is ceil(count/PageSize), 0 for an empty source.
func (c *Controller) TotalPages() int {
	n := c.src.Count()
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// GoTo moves to page, clamped into [1, max(1, TotalPages)].
func (c *Controller) GoTo(page int) {
	c.current = clamp(page, 1, max(1, c.TotalPages()))
}

// Next moves one page forward, staying put on the last page.
func (c *Controller) Next() { c.GoTo(c.current + 1) }

// Prev moves one page back, staying put on the first page.
func (c *Controller) Prev() { c.GoTo(c.current - 1) }

// First moves to page 1.
func (c *Controller) First() { c.GoTo(1) }

// Last moves to the final page.
func (c *Controller) Last() { c.GoTo(c.TotalPages()) }

// CanGoPrev reports whether a previous page exists.
func (c *Controller) CanGoPrev() bool { return c.current > 1 }

// CanGoNext reports whether a following page exists.
func (c *Controller) CanGoNext() bool { return c.current < c.TotalPages() }

// VisiblePage returns the items on the current page.
func (c *Controller) VisiblePage() []model.Item {
	return c.src.Slice((c.current-1)*PageSize, PageSize)
}

// PageLabels returns the windowed label row for the current page.
//
// Up to WindowSize page numbers are shown starting two pages before the
// current one. When the window reaches the last page it is shifted left so it
// stays full width. Page 1 and the last page are always reachable; an
// ellipsis stands in for any gap between them and the window.
func (c *Controller) PageLabels() []Label {
	total := c.TotalPages()
	if total <= 0 {
		return []Label{}
	}

	start := max(1, c.current-2)
	end := min(total, start+WindowSize-1)
	if total > WindowSize && end == total {
		start = end - WindowSize + 1
	}

	labels := make([]Label, 0, WindowSize+4)
	if start > 1 {
		labels = append(labels, Label{Page: 1})
	}
	if start > 2 {
		labels = append(labels, Ellipsis)
	}
	for p := start; p <= end; p++ {
		labels = append(labels, Label{Page: p})
	}
	if end < total-1 {
		labels = append(labels, Ellipsis)
	}
	if end < total {
		labels = append(labels, Label{Page: total})
	}
	return labels
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
