package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/pager"
	"github.com/idilsaglam/todoview/internal/store"
	"github.com/idilsaglam/todoview/internal/store/jsonstore"
	"github.com/idilsaglam/todoview/internal/tui"
	"github.com/idilsaglam/todoview/internal/ui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through the list interactively",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.browse(cmd.Context())
		},
	}
}

func (a *app) browse(ctx context.Context) error {
	loader, err := a.loader()
	if err != nil {
		return err
	}
	return tui.Run(ctx, loader, a.base)
}

func newPageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "page <n>",
		Short: "Print one page and exit (out-of-range pages are clamped)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: todoview page <n>")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return usagef("page: not a number: %s", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[0])
			items, err := a.loadOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPage(items, n))
			return nil
		},
	}
}

// renderPage lays out one clamped page the way the interactive view does.
func renderPage(items []model.Item, page int) string {
	s := store.New()
	s.Load(items)
	p := pager.New(s)
	p.GoTo(page)

	done, _ := model.Stats(items)
	lines := []string{
		ui.Header(items),
		ui.Current().Muted.Render(ui.ProgressBar(done, len(items), 28)),
		"",
	}
	if s.Count() == 0 {
		lines = append(lines, ui.Current().Muted.Render("no items"))
		return ui.Panel(lines)
	}
	lines = append(lines,
		ui.Table(p.VisiblePage()),
		ui.PageBar(p.PageLabels(), p.CurrentPage(), p.CanGoPrev(), p.CanGoNext()),
		ui.PageStatus(p.CurrentPage(), p.TotalPages()),
	)
	return ui.Panel(lines)
}

func newFetchCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the list and save it as a JSON snapshot",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.remote()
			if err != nil {
				return err
			}
			items, err := client.LoadItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			if err := jsonstore.Save(out, items); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			a.logger.Info().Str("path", out).Int("items", len(items)).Msg("Snapshot written")
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("saved %d items to %s", len(items), out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", jsonstore.DefaultFileName, "snapshot path")
	return cmd
}

// loadOnce runs the configured loader a single time, logging a failure.
func (a *app) loadOnce(ctx context.Context) ([]model.Item, error) {
	loader, err := a.loader()
	if err != nil {
		return nil, err
	}
	items, err := loader.LoadItems(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("Load failed")
		return nil, fmt.Errorf("load: %w", err)
	}
	return items, nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("%s: unexpected argument %q", cmd.Name(), args[0])
	}
	return nil
}
