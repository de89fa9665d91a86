package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cr-go/internal/model"
	"cr-go/internal/rec"
)

const defaultDiscordAPIBase = "https://discord.com/api/v10"

// discordPageLimit is the API maximum for one messages request.
const discordPageLimit = 100

// DiscordAdapter fetches the recent history of a Discord channel over the
// REST API using a bot token. Messages arrive newest-first and are reversed
// into chronological order before buffering.
type DiscordAdapter struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewDiscordAdapter creates a Discord adapter using the given bot token.
func NewDiscordAdapter(token string) *DiscordAdapter {
	return &DiscordAdapter{
		token:   token,
		baseURL: defaultDiscordAPIBase,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *DiscordAdapter) Name() string { return "discord" }

func (a *DiscordAdapter) Available() error {
	if a.token == "" {
		return fmt.Errorf("discord recording requires a bot token")
	}
	return nil
}

type discordChannel struct {
	Name string `json:"name"`
}

type discordMessage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Author    struct {
		Username string `json:"username"`
	} `json:"author"`
	Attachments []struct {
		URL string `json:"url"`
	} `json:"attachments"`
	Reactions []struct {
		Emoji struct {
			Name string `json:"name"`
		} `json:"emoji"`
	} `json:"reactions"`
}

// Record fetches up to opts.Limit messages from the channel identified by
// opts.Channel (a Discord channel ID) and buffers them oldest-first.
func (a *DiscordAdapter) Record(ctx context.Context, buf *rec.Buffer, opts rec.RecordOptions) error {
	var channel discordChannel
	if err := a.get(ctx, "/channels/"+url.PathEscape(opts.Channel), nil, &channel); err != nil {
		return fmt.Errorf("fetching channel info: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 || limit > discordPageLimit {
		limit = discordPageLimit
	}

	var messages []discordMessage
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if err := a.get(ctx, "/channels/"+url.PathEscape(opts.Channel)+"/messages", query, &messages); err != nil {
		return fmt.Errorf("fetching messages: %w", err)
	}

	// The API returns newest first.
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]

		attachments := []string{}
		for _, att := range m.Attachments {
			attachments = append(attachments, att.URL)
		}
		reactions := []string{}
		for _, r := range m.Reactions {
			reactions = append(reactions, r.Emoji.Name)
		}

		buf.Add(model.ChannelMessage{
			Timestamp: m.Timestamp,
			Channel:   channel.Name,
			User:      m.Author.Username,
			Content:   m.Content,
			MessageID: m.ID,
			Metadata: map[string]any{
				"attachments": attachments,
				"reactions":   reactions,
			},
		})
	}

	return nil
}

// get performs an authenticated GET against the Discord API and decodes the
// JSON response into out.
func (a *DiscordAdapter) get(ctx context.Context, path string, query url.Values, out any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+a.token)

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discord API returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ rec.Adapter = (*DiscordAdapter)(nil)
