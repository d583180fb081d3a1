package cmd

import (
	"context"

	"github.com/matheuskafuri/newsai/internal/browser"
	"github.com/matheuskafuri/newsai/internal/feed"
	"github.com/matheuskafuri/newsai/internal/theme"
	"github.com/matheuskafuri/newsai/internal/tui"
)

func runTUI(ctx context.Context, s *session) error {
	store := feed.New(s.client,
		feed.WithPageSize(s.cfg.GetPageSize()),
		feed.WithLogger(s.logger.Named("feed")))

	return tui.Run(ctx, tui.RunOpts{
		Store:      store,
		Theme:      theme.New(s.cfg.ThemeMode()),
		Categories: s.cfg.Categories,
		Opener:     browser.System{},
		Logger:     s.logger.Named("tui"),
	})
}
