package testutil

import (
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/app/page"
	"github.com/preston-bernstein/sports-page-service/internal/store"
)

// NewPageStore returns a page store holding the last of pages, or an empty store when none are given.
func NewPageStore(pages ...aggregate.Page) *store.PageStore {
	ps := store.NewPageStore()
	if len(pages) > 0 {
		ps.SetPage(pages[len(pages)-1])
	}
	return ps
}

// NewPageService builds a page service rendering in UTC over a store preloaded with pages.
func NewPageService(pages ...aggregate.Page) *page.Service {
	return page.NewService(NewPageStore(pages...), time.UTC)
}
