package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

const defaultSlackAPIBase = "https://slack.com/api"

// slackDefaultLimit matches the conversations.history default page size.
const slackDefaultLimit = 100

// SlackAdapter fetches the recent history of a Slack channel over the Web
// API. User display names are resolved through users.info and cached per
// user ID for the session.
type SlackAdapter struct {
	token   string
	baseURL string
	http    *http.Client

	userNames map[string]string // user ID -> display name
}

// NewSlackAdapter creates a Slack adapter using the given token.
func NewSlackAdapter(token string) *SlackAdapter {
	return &SlackAdapter{
		token:     token,
		baseURL:   defaultSlackAPIBase,
		http:      &http.Client{Timeout: 15 * time.Second},
		userNames: make(map[string]string),
	}
}

func (a *SlackAdapter) Name() string { return "slack" }

func (a *SlackAdapter) Available() error {
	if a.token == "" {
		return fmt.Errorf("slack recording requires a token")
	}
	return nil
}

type slackChannelInfo struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel struct {
		Name string `json:"name"`
	} `json:"channel"`
}

type slackHistory struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Messages []struct {
		Type     string `json:"type"`
		Subtype  string `json:"subtype"`
		Ts       string `json:"ts"`
		User     string `json:"user"`
		Text     string `json:"text"`
		ThreadTs string `json:"thread_ts"`
	} `json:"messages"`
}

type slackUserInfo struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  struct {
		Name     string `json:"name"`
		RealName string `json:"real_name"`
	} `json:"user"`
}

// Record fetches up to opts.Limit messages from the channel identified by
// opts.Channel (a Slack channel ID) and buffers them oldest-first. Only
// plain user messages are kept; joins, topic changes and other subtyped
// events are skipped.
func (a *SlackAdapter) Record(ctx context.Context, buf *rec.Buffer, opts rec.RecordOptions) error {
	var info slackChannelInfo
	query := url.Values{"channel": []string{opts.Channel}}
	if err := a.get(ctx, "/conversations.info", query, &info); err != nil {
		return fmt.Errorf("fetching channel info: %w", err)
	}
	if !info.OK {
		return fmt.Errorf("slack API error: %s", info.Error)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = slackDefaultLimit
	}

	var history slackHistory
	query = url.Values{
		"channel": []string{opts.Channel},
		"limit":   []string{strconv.Itoa(limit)},
	}
	if err := a.get(ctx, "/conversations.history", query, &history); err != nil {
		return fmt.Errorf("fetching messages: %w", err)
	}
	if !history.OK {
		return fmt.Errorf("slack API error: %s", history.Error)
	}

	// The API returns newest first.
	for i := len(history.Messages) - 1; i >= 0; i-- {
		m := history.Messages[i]
		if m.Type != "message" || m.Subtype != "" {
			continue
		}

		username, err := a.userName(ctx, m.User)
		if err != nil {
			return fmt.Errorf("resolving user %s: %w", m.User, err)
		}

		buf.Add(model.ChannelMessage{
			Timestamp: slackTimestamp(m.Ts),
			Channel:   info.Channel.Name,
			User:      username,
			Content:   m.Text,
			MessageID: m.Ts,
			Metadata: map[string]any{
				"user_id":   m.User,
				"thread_ts": m.ThreadTs,
			},
		})
	}

	return nil
}

// userName resolves a user ID to a display name, preferring the real name,
// caching results for the session.
func (a *SlackAdapter) userName(ctx context.Context, userID string) (string, error) {
	if name, ok := a.userNames[userID]; ok {
		return name, nil
	}

	var info slackUserInfo
	if err := a.get(ctx, "/users.info", url.Values{"user": []string{userID}}, &info); err != nil {
		return "", err
	}
	if !info.OK {
		return "", fmt.Errorf("slack API error: %s", info.Error)
	}

	name := info.User.RealName
	if name == "" {
		name = info.User.Name
	}
	a.userNames[userID] = name
	return name, nil
}

// slackTimestamp converts a Slack "seconds.fraction" ts into an ISO-8601
// string. An unparsable ts is passed through unchanged.
func slackTimestamp(ts string) string {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ts
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(time.RFC3339)
}

// get performs an authenticated GET against the Slack Web API and decodes
// the JSON response into out.
func (a *SlackAdapter) get(ctx context.Context, path string, query url.Values, out any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ rec.Adapter = (*SlackAdapter)(nil)
