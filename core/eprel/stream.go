package eprel

import (
	"context"
	"fmt"
)

// StreamAll walks a product group page by page, calling fn for every product.
// It never buffers more than one page in memory. Iteration stops on an empty
// page, when the API reports no further pages, or once maxProducts items have
// been seen (0 means no cap). startPage below 1 starts from the beginning,
// which makes the walk restartable from a saved checkpoint.
func (c *Client) StreamAll(ctx context.Context, group string, startPage, maxProducts int, fn func(item map[string]any) error) error {
	page := startPage
	if page < 1 {
		page = 1
	}

	fetched := 0
	for {
		resp, err := c.FetchPage(ctx, group, page, 0)
		if err != nil {
			return fmt.Errorf("fetching page %d of %s: %w", page, group, err)
		}
		if len(resp.Items) == 0 {
			return nil
		}

		for _, item := range resp.Items {
			if err := fn(item); err != nil {
				return err
			}
			fetched++
			if maxProducts > 0 && fetched >= maxProducts {
				return nil
			}
		}

		if !resp.HasMore {
			return nil
		}
		page++
	}
}
