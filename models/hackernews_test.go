package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryLink_ExternalURL(t *testing.T) {
	s := Story{
		URL:           "https://example.com/post",
		DiscussionURL: "https://news.ycombinator.com/item?id=1",
	}

	assert.Equal(t, "https://example.com/post", s.Link())
}

func TestStoryLink_SelfPostFallsBackToDiscussion(t *testing.T) {
	s := Story{
		URL:           "",
		DiscussionURL: "https://news.ycombinator.com/item?id=1",
	}

	assert.Equal(t, "https://news.ycombinator.com/item?id=1", s.Link())
}
