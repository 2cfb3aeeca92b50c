package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/kova98/hndigest/models"
)

const (
	discussionURLFormat = "https://news.ycombinator.com/item?id=%d"

	// detailFetchLimit caps concurrent item detail requests so a large
	// digest does not hammer the API.
	detailFetchLimit = 8
)

// HackerNewsClient reads the Hacker News Firebase API: the ranked top-story
// ID list and per-item detail. Base URL is injectable for tests.
type HackerNewsClient struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

func NewHackerNewsClient(logger *slog.Logger, client *http.Client, baseURL string) *HackerNewsClient {
	return &HackerNewsClient{
		logger:  logger,
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// TopStoryIDs fetches the current top-story IDs, ranked by the API.
func (c *HackerNewsClient) TopStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.fetchJSON(ctx, c.baseURL+"/topstories.json", &ids); err != nil {
		return nil, errors.Wrap(err, "fetch top stories")
	}
	return ids, nil
}

// FetchStory fetches one item's detail. Items that are not stories, or that
// are dead or deleted, are reported as skipped (ok=false) rather than as
// errors.
func (c *HackerNewsClient) FetchStory(ctx context.Context, id int) (models.Story, bool, error) {
	var item models.Item
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	if err := c.fetchJSON(ctx, url, &item); err != nil {
		return models.Story{}, false, errors.Wrapf(err, "fetch item %d", id)
	}

	if item.Type != "story" || item.Dead || item.Deleted {
		return models.Story{}, false, nil
	}

	story := models.Story{
		ID:            id,
		Title:         item.Title,
		URL:           item.URL,
		DiscussionURL: fmt.Sprintf(discussionURLFormat, id),
		Score:         item.Score,
		CommentCount:  item.Descendants,
	}
	return story, true, nil
}

// TopStories returns up to n top stories in the API's ranked order. Detail
// fetches run concurrently but write into index-stable slots, so the ranked
// order survives out-of-order completion. Any detail failure fails the whole
// call; no partial digest is assembled.
func (c *HackerNewsClient) TopStories(ctx context.Context, n int) ([]models.Story, error) {
	start := time.Now()

	ids, err := c.TopStoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n < len(ids) {
		ids = ids[:n]
	}

	slots := make([]*models.Story, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			story, ok, err := c.FetchStory(gctx, id)
			if err != nil {
				return err
			}
			if ok {
				slots[i] = &story
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stories := make([]models.Story, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			stories = append(stories, *s)
		}
	}

	c.logger.Info("fetched top stories",
		"requested", n,
		"stories", len(stories),
		"skipped", len(ids)-len(stories),
		"duration_ms", time.Since(start).Milliseconds())

	return stories, nil
}

func (c *HackerNewsClient) fetchJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "hndigest")

	start := time.Now()
	resp, err := c.client.Do(req)
	requestMs := time.Since(start).Milliseconds()
	if err != nil {
		return fmt.Errorf("(%dms) %w", requestMs, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return err
	}

	c.logger.Debug("fetched", "url", url, "request_ms", requestMs)
	return nil
}
