package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/models"
)

// maxPages caps how many pages one list call follows.
const maxPages = 100

// listAll reads every page of a list endpoint. A bare array is a single
// page; an envelope is followed through its next links. Only the query of a
// next link is used, so the request stays on the client's base URL.
func listAll[T any](ctx context.Context, c *client.Client, path string, params url.Values) ([]T, error) {
	items := []T{}
	seen := map[string]bool{}

	for i := 0; i < maxPages; i++ {
		page, err := client.Get[models.Page[T]](ctx, c, path, params)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if page.Kind != models.PagePaginated || page.Next == nil || *page.Next == "" {
			return items, nil
		}

		next, err := url.Parse(*page.Next)
		if err != nil {
			return nil, fmt.Errorf("%w: bad next link %q: %w", client.ErrServer, *page.Next, err)
		}
		q := next.Query()
		if seen[q.Encode()] {
			return nil, fmt.Errorf("%w: next link %q loops", client.ErrServer, *page.Next)
		}
		seen[q.Encode()] = true
		params = q
	}
	return nil, fmt.Errorf("%w: %s has more than %d pages", client.ErrServer, path, maxPages)
}
