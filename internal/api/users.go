package api

import "context"

// User is one entry of the users list.
type User struct {
	ChatID         int64    `json:"chat_id"`
	ActiveProfile  string   `json:"active_profile"`
	ProfileSummary string   `json:"profile_summary"`
	ProfileTopics  []string `json:"profile_topics"`
}

// UserConfig is a chat's profile and tuning settings. Optional numbers are
// pointers so "unset" can be told apart from zero.
type UserConfig struct {
	ChatID                int64              `json:"chat_id"`
	ActiveProfile         string             `json:"active_profile"`
	Profiles              []string           `json:"profiles"`
	ProfileSummary        string             `json:"profile_summary"`
	ProfileTopics         []string           `json:"profile_topics"`
	ProfileTopicWeights   map[string]float64 `json:"profile_topic_weights"`
	SimThreshold          *float64           `json:"sim_threshold"`
	TopN                  *float64           `json:"topn"`
	MaxAgeHours           *float64           `json:"max_age_hours"`
	PollMin               *float64           `json:"poll_min"`
	PollDailyTime         string             `json:"poll_daily_time"`
	LLMEnabled            *bool              `json:"llm_enabled"`
	LLMThreshold          *float64           `json:"llm_threshold"`
	LLMMaxPerTick         *float64           `json:"llm_max_per_tick"`
	LLMOnDemandMaxPerHour *float64           `json:"llm_ondemand_max_per_hour"`
	LastLuckyTS           string             `json:"last_lucky_ts"`
	LikesTotal            int                `json:"likes_total"`
	DislikesTotal         int                `json:"dislikes_total"`
}

// Users lists every registered chat.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.getJSON(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Config fetches a chat's configuration.
func (c *Client) Config(ctx context.Context, chatID int64) (UserConfig, error) {
	var out UserConfig
	err := c.getJSON(ctx, userPath(chatID, "config"), nil, &out)
	return out, err
}

// UseProfile makes profile the chat's active profile and returns the
// updated configuration.
func (c *Client) UseProfile(ctx context.Context, chatID int64, profile string) (UserConfig, error) {
	var out UserConfig
	err := c.postJSON(ctx, userPath(chatID, "profiles", "use"), map[string]string{"profile": profile}, &out)
	return out, err
}
