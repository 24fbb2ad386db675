package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/store"
)

func newController(t *testing.T, n int) *Controller {
	t.Helper()
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.Item{ID: i + 1, OwnerID: i/20 + 1, Title: "todo"}
	}
	s := store.New()
	s.Load(items)
	return New(s)
}

// labels builds an expected label row; 0 stands for an ellipsis.
func labels(pages ...int) []Label {
	out := make([]Label, len(pages))
	for i, p := range pages {
		out[i] = Label{Page: p}
	}
	return out
}

func ids(items []model.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestController_TotalPages(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 1}, {9, 1}, {10, 1}, {11, 2}, {25, 3}, {100, 10}, {101, 11}, {200, 20},
	}
	for _, tt := range tests {
		c := newController(t, tt.n)
		assert.Equal(t, tt.want, c.TotalPages(), "n=%d", tt.n)
	}
}

func TestController_VisiblePageLength(t *testing.T) {
	for _, n := range []int{1, 7, 10, 25, 99, 100, 103} {
		c := newController(t, n)
		for page := 1; page <= c.TotalPages(); page++ {
			c.GoTo(page)
			want := min(PageSize, n-(page-1)*PageSize)
			got := c.VisiblePage()
			require.Len(t, got, want, "n=%d page=%d", n, page)
			assert.Equal(t, (page-1)*PageSize+1, got[0].ID)
		}
	}
}

func TestController_ClampLaw(t *testing.T) {
	for _, n := range []int{0, 5, 25, 100} {
		c := newController(t, n)
		upper := max(1, c.TotalPages())
		for _, p := range []int{-1000, -1, 0, 1, 2, 3, 10, 11, 999} {
			c.GoTo(p)
			assert.GreaterOrEqual(t, c.CurrentPage(), 1, "n=%d p=%d", n, p)
			assert.LessOrEqual(t, c.CurrentPage(), upper, "n=%d p=%d", n, p)
		}
	}
}

func TestController_GoToIdempotent(t *testing.T) {
	c := newController(t, 100)
	for page := 1; page <= 10; page++ {
		c.GoTo(page)
		first := c.PageLabels()
		c.GoTo(page)
		assert.Equal(t, first, c.PageLabels(), "page=%d", page)
	}
}

func TestController_WindowSizeLaw(t *testing.T) {
	for _, n := range []int{1, 30, 50, 60, 70, 100, 500} {
		c := newController(t, n)
		total := c.TotalPages()
		for page := 1; page <= total; page++ {
			c.GoTo(page)
			var numeric, ellipses int
			for _, l := range c.PageLabels() {
				if l.IsEllipsis() {
					ellipses++
				} else {
					numeric++
				}
			}
			assert.LessOrEqual(t, ellipses, 2)
			assert.LessOrEqual(t, numeric, WindowSize+2)
			assert.LessOrEqual(t, numeric+ellipses, WindowSize+4)
		}
	}
}

func TestController_CurrentPageAlwaysLabelled(t *testing.T) {
	c := newController(t, 200)
	for page := 1; page <= c.TotalPages(); page++ {
		c.GoTo(page)
		assert.Contains(t, c.PageLabels(), Label{Page: page})
	}
}

func TestController_PartialLastPage(t *testing.T) {
	c := newController(t, 25)

	assert.Equal(t, 3, c.TotalPages())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(c.VisiblePage()))
	assert.False(t, c.CanGoPrev())
	assert.True(t, c.CanGoNext())
	assert.Equal(t, labels(1, 2, 3), c.PageLabels())

	c.GoTo(3)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, ids(c.VisiblePage()))
	assert.True(t, c.CanGoPrev())
	assert.False(t, c.CanGoNext())
}

func TestController_EmptySource(t *testing.T) {
	c := newController(t, 0)

	assert.Equal(t, 0, c.TotalPages())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Empty(t, c.VisiblePage())
	assert.Empty(t, c.PageLabels())
	assert.False(t, c.CanGoPrev())
	assert.False(t, c.CanGoNext())

	c.Next()
	c.Last()
	assert.Equal(t, 1, c.CurrentPage())
}

func TestController_WindowMiddle(t *testing.T) {
	c := newController(t, 100)
	c.GoTo(7)
	assert.Equal(t, labels(1, 0, 5, 6, 7, 8, 9, 10), c.PageLabels())
}

func TestController_WindowSnapsAtEnd(t *testing.T) {
	c := newController(t, 100)
	c.GoTo(10)
	assert.Equal(t, labels(1, 0, 6, 7, 8, 9, 10), c.PageLabels())
}

func TestController_ClampsPastEnd(t *testing.T) {
	c := newController(t, 100)
	c.GoTo(999)
	assert.Equal(t, 10, c.CurrentPage())
	assert.Equal(t, labels(1, 0, 6, 7, 8, 9, 10), c.PageLabels())
}

func TestController_PageLabels(t *testing.T) {
	tests := []struct {
		name string
		n    int
		page int
		want []Label
	}{
		{name: "single page", n: 4, page: 1, want: labels(1)},
		{name: "five pages first", n: 50, page: 1, want: labels(1, 2, 3, 4, 5)},
		{name: "five pages middle", n: 50, page: 3, want: labels(1, 2, 3, 4, 5)},
		// the window is not re-snapped when total <= WindowSize
		{name: "five pages page four", n: 50, page: 4, want: labels(1, 2, 3, 4, 5)},
		{name: "five pages last", n: 50, page: 5, want: labels(1, 0, 3, 4, 5)},
		{name: "six pages last", n: 60, page: 6, want: labels(1, 2, 3, 4, 5, 6)},
		{name: "seven pages first", n: 70, page: 1, want: labels(1, 2, 3, 4, 5, 0, 7)},
		{name: "seven pages third", n: 70, page: 3, want: labels(1, 2, 3, 4, 5, 0, 7)},
		{name: "seven pages fourth", n: 70, page: 4, want: labels(1, 2, 3, 4, 5, 6, 7)},
		{name: "ten pages page two", n: 100, page: 2, want: labels(1, 2, 3, 4, 5, 0, 10)},
		{name: "ten pages page four", n: 100, page: 4, want: labels(1, 2, 3, 4, 5, 6, 0, 10)},
		{name: "ten pages page six", n: 100, page: 6, want: labels(1, 0, 4, 5, 6, 7, 8, 0, 10)},
		{name: "twenty pages middle", n: 200, page: 10, want: labels(1, 0, 8, 9, 10, 11, 12, 0, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, tt.n)
			c.GoTo(tt.page)
			assert.Equal(t, tt.want, c.PageLabels())
		})
	}
}

func TestController_NextPrev(t *testing.T) {
	c := newController(t, 25)

	c.Prev()
	assert.Equal(t, 1, c.CurrentPage())

	c.Next()
	c.Next()
	c.Next()
	assert.Equal(t, 3, c.CurrentPage())

	c.Prev()
	assert.Equal(t, 2, c.CurrentPage())

	c.First()
	assert.Equal(t, 1, c.CurrentPage())
	c.Last()
	assert.Equal(t, 3, c.CurrentPage())
}

func TestLabel_String(t *testing.T) {
	assert.Equal(t, "...", Ellipsis.String())
	assert.Equal(t, "42", Label{Page: 42}.String())
	assert.True(t, Ellipsis.IsEllipsis())
	assert.False(t, Label{Page: 1}.IsEllipsis())
}
