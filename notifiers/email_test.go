package notifiers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kova98/hndigest/models"
)

var testTime = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

func testStory(id int, title string) models.Story {
	return models.Story{
		ID:            id,
		Title:         title,
		URL:           "https://example.com/post",
		DiscussionURL: "https://news.ycombinator.com/item?id=101",
		Score:         42,
		CommentCount:  17,
	}
}

func TestDigestEmail_RendersStoryFields(t *testing.T) {
	mail, err := DigestEmail("reader@example.com", []models.Story{testStory(101, "A fine story")}, testTime)
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", mail.To)
	assert.Equal(t, "Hacker News Daily Digest for Monday, March 3, 2025", mail.Subject)
	assert.Contains(t, mail.Body, "Monday, March 3, 2025")
	assert.Contains(t, mail.Body, "A fine story")
	assert.Contains(t, mail.Body, `href="https://example.com/post"`)
	assert.Contains(t, mail.Body, `href="https://news.ycombinator.com/item?id=101"`)
	assert.Contains(t, mail.Body, "42 points")
	assert.Contains(t, mail.Body, "17 comments")
}

func TestDigestEmail_BlocksFollowInputOrder(t *testing.T) {
	stories := []models.Story{
		testStory(101, "first story"),
		testStory(102, "second story"),
		testStory(103, "third story"),
	}

	mail, err := DigestEmail("reader@example.com", stories, testTime)
	require.NoError(t, err)

	first := strings.Index(mail.Body, "first story")
	second := strings.Index(mail.Body, "second story")
	third := strings.Index(mail.Body, "third story")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestDigestEmail_SelfPostLinksToDiscussion(t *testing.T) {
	story := models.Story{
		ID:            101,
		Title:         "Ask HN: anyone?",
		DiscussionURL: "https://news.ycombinator.com/item?id=101",
		Score:         5,
		CommentCount:  3,
	}

	mail, err := DigestEmail("reader@example.com", []models.Story{story}, testTime)
	require.NoError(t, err)

	// Both links point at the discussion page when there is no external URL.
	assert.Equal(t, 2, strings.Count(mail.Body, `href="https://news.ycombinator.com/item?id=101"`))
}

func TestDigestEmail_EscapesTitles(t *testing.T) {
	mail, err := DigestEmail("reader@example.com", []models.Story{testStory(101, `<script>alert("x")</script>`)}, testTime)
	require.NoError(t, err)

	assert.NotContains(t, mail.Body, "<script>")
	assert.Contains(t, mail.Body, "&lt;script&gt;")
}

func TestDigestEmail_NoStories(t *testing.T) {
	_, err := DigestEmail("reader@example.com", nil, testTime)
	assert.Error(t, err)
}
