package notifier

import (
	"context"
	"fmt"
	"time"
)

const slackMaxSection = 3000

// Slack posts alerts to an Incoming Webhook using Block Kit.
// Incoming webhooks accept about one message per second.
type Slack struct {
	hook *webhook
}

// NewSlack returns a Slack notifier for webhookURL.
func NewSlack(webhookURL string, timeout time.Duration) *Slack {
	return &Slack{hook: newWebhook("slack", webhookURL, timeout, 1, 1)}
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func buildSlackPayload(a Alert) slackPayload {
	header := fmt.Sprintf("*%s*", a.Title)
	return slackPayload{
		// 通知のプレビューに出るフォールバック
		Text: a.Title,
		Blocks: []slackBlock{
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: truncate(header+"\n"+a.Message, slackMaxSection)}},
			{Type: "context", Elements: []slackText{
				{Type: "mrkdwn", Text: fmt.Sprintf("Failed categories: %d / %d", a.Failed, a.Total)},
				{Type: "mrkdwn", Text: a.At.UTC().Format(time.RFC3339)},
			}},
		},
	}
}

// Notify implements Notifier.
func (s *Slack) Notify(ctx context.Context, a Alert) error {
	return s.hook.send(ctx, buildSlackPayload(a))
}
