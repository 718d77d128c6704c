package notifier

import (
	"context"
	"fmt"
	"time"
)

const (
	discordMaxTitle       = 256
	discordMaxDescription = 4096
	discordRed            = 15548997 // #ED4245
)

// Discord posts alerts as a single embed.
// Webhooks allow 30 requests per minute, so sends are throttled to 0.5/s.
type Discord struct {
	hook *webhook
}

// NewDiscord returns a Discord notifier for webhookURL.
func NewDiscord(webhookURL string, timeout time.Duration) *Discord {
	return &Discord{hook: newWebhook("discord", webhookURL, timeout, 0.5, 3)}
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func buildDiscordPayload(a Alert) discordPayload {
	return discordPayload{Embeds: []discordEmbed{{
		Title:       truncate(a.Title, discordMaxTitle),
		Description: truncate(a.Message, discordMaxDescription),
		Color:       discordRed,
		Fields: []discordField{
			{Name: "Failed categories", Value: fmt.Sprintf("%d / %d", a.Failed, a.Total), Inline: true},
		},
		Timestamp: a.At.UTC().Format(time.RFC3339),
	}}}
}

// Notify implements Notifier.
func (d *Discord) Notify(ctx context.Context, a Alert) error {
	return d.hook.send(ctx, buildDiscordPayload(a))
}
