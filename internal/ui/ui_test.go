package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/pager"
)

func plain(t *testing.T, theme string) {
	t.Helper()
	SetColorMode("never")
	SetTheme(theme)
	t.Cleanup(func() { SetTheme("classic") })
}

func TestSetTheme(t *testing.T) {
	for _, name := range []string{"classic", "neon", "mono"} {
		SetTheme(name)
		assert.Equal(t, name, Current().Name)
	}
	SetTheme("unknown")
	assert.Equal(t, "classic", Current().Name)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(5, 10, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1), "zero total and narrow width are clamped")
	assert.True(t, strings.HasPrefix(ProgressBar(12, 10, 10), strings.Repeat("█", 10)+" "), "overflow is capped")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "élan", Truncate("élan", 4))
}

func TestStatusText(t *testing.T) {
	plain(t, "classic")
	assert.Equal(t, "✔ Completed", StatusText(model.Item{Completed: true}))
	assert.Equal(t, "⏳ Pending", StatusText(model.Item{}))
}

func TestTable(t *testing.T) {
	plain(t, "mono")
	out := Table([]model.Item{
		{ID: 1, OwnerID: 1, Title: "delectus aut autem"},
		{ID: 2, OwnerID: 7, Title: strings.Repeat("x", 100), Completed: true},
	})

	for _, want := range []string{"ID", "User", "Title", "Status", "delectus aut autem", "x Completed", "- Pending"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, strings.Repeat("x", MaxTitle+1))
	assert.Contains(t, out, strings.Repeat("x", MaxTitle-3)+"...")
}

func TestPageBar(t *testing.T) {
	plain(t, "mono")
	labels := []pager.Label{{Page: 1}, pager.Ellipsis, {Page: 5}, {Page: 6}, {Page: 7}, {Page: 8}, {Page: 9}, {Page: 10}}

	assert.Equal(t, "< 1 ... 5 6 [7] 8 9 10 >", PageBar(labels, 7, true, true))
	assert.Equal(t, "< >", PageBar(nil, 1, false, false))
}

func TestHeader(t *testing.T) {
	plain(t, "mono")
	out := Header([]model.Item{{Completed: true}, {}, {}})
	assert.Equal(t, "Todo List   x 1  • 2  Total 3", out)
}

func TestPageStatus(t *testing.T) {
	plain(t, "classic")
	assert.Equal(t, "Page 3 of 10", PageStatus(3, 10))
}

func TestOKFail(t *testing.T) {
	plain(t, "classic")
	var buf bytes.Buffer
	OK(&buf, "saved")
	Fail(&buf, "load: boom")
	assert.Equal(t, "✔ saved\n✖ load: boom\n", buf.String())
}

func TestPanel(t *testing.T) {
	plain(t, "mono")
	out := Panel([]string{"a", "bb"})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "+----+", lines[0])
	assert.Equal(t, "| a  |", lines[1])
}
