package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"TrendSniper/internal/model"
)

// Discord limits one webhook message to ten embeds.
const maxEmbedsPerMessage = 10

const colorGreen = 0x2ecc71

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields"`
	Footer      *struct {
		Text string `json:"text"`
	} `json:"footer,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// DiscordNotifier delivers trade ideas as embeds via a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Footer     string
	Client     *http.Client
}

// NewDiscordNotifier creates a DiscordNotifier with a 10-second timeout.
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Footer:     DefaultFooter,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DiscordNotifier) Name() string { return "discord" }

// DeliverIdeas posts one embed per idea, batched to the webhook limit.
func (d *DiscordNotifier) DeliverIdeas(ctx context.Context, ideas []model.TradeIdea) error {
	for start := 0; start < len(ideas); start += maxEmbedsPerMessage {
		end := min(start+maxEmbedsPerMessage, len(ideas))
		embeds := make([]discordEmbed, 0, end-start)
		for _, idea := range ideas[start:end] {
			embeds = append(embeds, buildEmbed(idea, d.Footer))
		}
		if err := d.post(ctx, map[string]any{"embeds": embeds}); err != nil {
			return err
		}
	}
	return nil
}

// Send posts a plain text message.
func (d *DiscordNotifier) Send(ctx context.Context, text string) error {
	return d.post(ctx, map[string]any{"content": text})
}

func (d *DiscordNotifier) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: send request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content on success.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("discord: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func buildEmbed(idea model.TradeIdea, footer string) discordEmbed {
	e := discordEmbed{
		Title:       fmt.Sprintf("TrendSniper Alert - %s", idea.Ticker),
		Description: fmt.Sprintf("Price: $%.4f", idea.Price),
		Color:       colorGreen,
		Fields: []discordField{
			{Name: "Entry", Value: fmt.Sprintf("$%.4f", idea.Entry), Inline: true},
			{Name: "Stop", Value: fmt.Sprintf("$%.4f", idea.Stop), Inline: true},
			{Name: "Take", Value: fmt.Sprintf("$%.4f", idea.Take), Inline: true},
			{Name: "Shares", Value: fmt.Sprintf("%d", idea.Shares), Inline: true},
			{Name: "VWAP", Value: fmt.Sprintf("$%.4f", idea.VWAP), Inline: true},
			{Name: "MA20 / MA50", Value: fmt.Sprintf("$%.4f / %.4f", idea.MA20, idea.MA50), Inline: true},
			{Name: "Volume (last/avg)", Value: fmt.Sprintf("%d / %d", idea.LastVolume, idea.AvgVolume), Inline: true},
		},
	}
	if !idea.CreatedAt.IsZero() {
		e.Timestamp = idea.CreatedAt.UTC().Format(time.RFC3339)
	}
	if footer != "" {
		e.Footer = &struct {
			Text string `json:"text"`
		}{Text: footer}
	}

	if idea.HasCatalyst {
		e.Fields = append(e.Fields, discordField{Name: "Catalyst", Value: "Yes - relevant news found"})
	} else if len(idea.Headlines) > 0 {
		e.Fields = append(e.Fields, discordField{Name: "News", Value: fmt.Sprintf("%d recent headlines", len(idea.Headlines))})
	}
	if len(idea.Headlines) > 0 {
		lines := make([]string, 0, maxLinkedHeadlines)
		for i, h := range idea.Headlines {
			if i >= maxLinkedHeadlines {
				break
			}
			if h.URL != "" {
				lines = append(lines, fmt.Sprintf("[%s](%s)", h.Text, h.URL))
			} else {
				lines = append(lines, h.Text)
			}
		}
		e.Fields = append(e.Fields, discordField{Name: "Headlines", Value: strings.Join(lines, "\n")})
	}
	return e
}
