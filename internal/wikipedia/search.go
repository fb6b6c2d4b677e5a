package wikipedia

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"wiki-resolver-go/internal/metrics"
	"wiki-resolver-go/internal/types"
)

// Search finds candidate pages for query. Titles come back in the order the
// search API ranks them, with redirects resolved, missing pages dropped and
// duplicates removed. No hits is an empty result, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	start := time.Now()
	defer func() { metrics.ObserveSearch(time.Since(start)) }()

	log := c.log.WithField("query", query)
	log.Info("wikipedia search request")

	titles, err := c.searchTitles(ctx, query)
	if err != nil {
		log.WithError(err).Error("wikipedia search failed")
		return nil, err
	}
	if len(titles) == 0 {
		log.Warn("no search results found")
		return []types.Candidate{}, nil
	}

	seen := make(map[string]bool, len(titles))
	out := make([]types.Candidate, 0, len(titles))
	for _, title := range titles {
		cand, ok, err := c.Page(ctx, title)
		if err != nil {
			log.WithError(err).WithField("title", title).Error("fetching page properties failed")
			return nil, err
		}
		if !ok {
			log.WithField("title", title).Debug("page does not exist or is a broken redirect")
			continue
		}
		if seen[cand.Title] {
			continue
		}
		seen[cand.Title] = true
		out = append(out, cand)
	}

	if len(out) == 0 {
		log.Warn("no valid pages found after checking existence")
	}
	return out, nil
}

func (c *Client) searchTitles(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(c.maxResults))

	r, err := c.getJSON(ctx, params, func() response { return &searchResponse{} })
	if err != nil {
		return nil, err
	}
	resp := r.(*searchResponse)
	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// Page fetches the popularity signals for one title, following redirects.
// ok is false when the page does not exist.
func (c *Client) Page(ctx context.Context, title string) (types.Candidate, bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "info|langlinks")
	params.Set("lllimit", "max")
	params.Set("redirects", "1")

	var cand types.Candidate
	found := false
	err := c.paginate(ctx, params, func() response { return &infoResponse{} }, func(r response) {
		resp := r.(*infoResponse)
		for _, p := range resp.Query.Pages {
			if p.Missing || p.Invalid {
				continue
			}
			if !found {
				cand = types.Candidate{
					Title:         p.Title,
					Exists:        true,
					Namespace:     types.NamespaceFromID(p.NS),
					ContentLength: p.Length,
				}
				found = true
			}
			cand.LanglinkCount += len(p.Langlinks)
		}
	})
	if err != nil || !found {
		return types.Candidate{}, false, err
	}

	backlinks, err := c.backlinks(ctx, cand.Title)
	if err != nil {
		return types.Candidate{}, false, err
	}
	cand.BacklinkCount = backlinks
	return cand, true, nil
}

func (c *Client) backlinks(ctx context.Context, title string) (int, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "backlinks")
	params.Set("bltitle", title)
	params.Set("bllimit", "max")

	count := 0
	err := c.paginate(ctx, params, func() response { return &backlinksResponse{} }, func(r response) {
		count += len(r.(*backlinksResponse).Query.Backlinks)
	})
	return count, err
}

// paginate follows MediaWiki "continue" tokens until the result set is
// exhausted or the configured continuation cap is hit.
func (c *Client) paginate(ctx context.Context, params url.Values, fresh func() response, each func(response)) error {
	for page := 0; ; page++ {
		resp, err := c.getJSON(ctx, cloneValues(params), fresh)
		if err != nil {
			return err
		}
		each(resp)

		next := resp.next()
		if len(next) == 0 {
			return nil
		}
		if c.maxContinuations > 0 && page+1 > c.maxContinuations {
			c.log.WithField("params", params.Encode()).Debug("continuation cap reached")
			return nil
		}
		for k, v := range next {
			params.Set(k, v)
		}
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
