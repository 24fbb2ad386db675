package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/pager"
)

// MaxTitle is the widest title cell before truncation.
const MaxTitle = 60

// StatusText is the label shown in the Status column.
func StatusText(it model.Item) string {
	if it.Completed {
		return current.SymDone + " Completed"
	}
	return current.SymPending + " Pending"
}

// Truncate shortens s to n runes, ending in "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Header is the title line with completed, pending and total counts.
func Header(items []model.Item) string {
	done, pending := model.Stats(items)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		current.Title.Render("Todo List"),
		current.Success.Render(current.SymDone), done,
		current.Pending.Render("•"), pending,
		current.Accent.Render("Total"), len(items),
	)
}

// Table renders one page of items as ID, User, Title and Status columns.
func Table(items []model.Item) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(current.Border).
		BorderStyle(current.Muted).
		Headers("ID", "User", "Title", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return current.Header.Padding(0, 1)
			}
			if col == 3 && row >= 0 && row < len(items) {
				if items[row].Completed {
					return current.Success.Padding(0, 1)
				}
				return current.Pending.Padding(0, 1)
			}
			if col < 2 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	for _, it := range items {
		t.Row(strconv.Itoa(it.ID), strconv.Itoa(it.OwnerID), Truncate(it.Title, MaxTitle), StatusText(it))
	}
	return t.Render()
}

// PageBar renders the prev/next affordances around the label row.
// The current page is bracketed so it reads even without colour.
func PageBar(labels []pager.Label, page int, canPrev, canNext bool) string {
	th := Current()
	arrow := func(sym string, enabled bool) string {
		if enabled {
			return th.Accent.Render(sym)
		}
		return th.Muted.Render(sym)
	}

	parts := make([]string, 0, len(labels)+2)
	parts = append(parts, arrow(th.Prev, canPrev))
	for _, l := range labels {
		switch {
		case l.IsEllipsis():
			parts = append(parts, th.Muted.Render(l.String()))
		case l.Page == page:
			parts = append(parts, th.Active.Render("["+l.String()+"]"))
		default:
			parts = append(parts, l.String())
		}
	}
	parts = append(parts, arrow(th.Next, canNext))
	return strings.Join(parts, " ")
}

// PageStatus is the "Page x of y" footer text.
func PageStatus(page, total int) string {
	return current.Muted.Render(fmt.Sprintf("Page %d of %d", page, total))
}
