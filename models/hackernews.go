package models

// Item is the Hacker News Firebase API item shape, as returned by
// /v0/item/<id>.json.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// Story is one ranked digest entry. URL is empty for self posts
// (Ask HN and similar), which link to the discussion page instead.
type Story struct {
	ID            int
	Title         string
	URL           string
	DiscussionURL string
	Score         int
	CommentCount  int
}

// Link returns the primary link target for the story: the external URL,
// or the discussion page when there is none.
func (s Story) Link() string {
	if s.URL == "" {
		return s.DiscussionURL
	}
	return s.URL
}
