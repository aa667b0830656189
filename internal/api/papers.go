package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jpreyes/paperradar/internal/feed"
)

// PapersQuery selects one papers fetch.
type PapersQuery struct {
	Limit  int
	Offset int
	Mode   feed.Mode
}

// Papers fetches a page (history) or the newest ranked items (live) for a
// chat. A body without "items" decodes to an empty list.
func (c *Client) Papers(ctx context.Context, chatID int64, q PapersQuery) (feed.Response, error) {
	mode := q.Mode
	if mode == "" {
		mode = feed.History
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("offset", strconv.Itoa(max(0, q.Offset)))
	query.Set("mode", string(mode))

	var resp feed.Response
	if err := c.getJSON(ctx, userPath(chatID, "papers"), query, &resp); err != nil {
		return feed.Response{}, err
	}
	return resp, nil
}

// Journals fetches the journal recommendations snapshot for a chat.
// limit <= 0 leaves the server default.
func (c *Client) Journals(ctx context.Context, chatID int64, limit int) (feed.JournalsResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp feed.JournalsResponse
	if err := c.getJSON(ctx, userPath(chatID, "journals"), query, &resp); err != nil {
		return feed.JournalsResponse{}, err
	}
	return resp, nil
}

type feedbackRequest struct {
	PaperID string `json:"paper_id"`
	Action  string `json:"action"`
}

// FeedbackResult is the server's view of a paper's feedback after a toggle.
type FeedbackResult struct {
	PaperID       string `json:"paper_id"`
	Liked         bool   `json:"liked"`
	Disliked      bool   `json:"disliked"`
	LikesTotal    int    `json:"likes_total"`
	DislikesTotal int    `json:"dislikes_total"`
}

// Feedback toggles "like" or "dislike" on a paper.
func (c *Client) Feedback(ctx context.Context, chatID int64, paperID, action string) (FeedbackResult, error) {
	var out FeedbackResult
	err := c.postJSON(ctx, userPath(chatID, "feedback"), feedbackRequest{PaperID: paperID, Action: action}, &out)
	return out, err
}
