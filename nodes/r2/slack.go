package r2

import (
	"fmt"
)

// Slack Block Kit payload for the upload notification: image preview,
// a short workflow summary, and link buttons for both artifacts.

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	ImageURL string         `json:"image_url,omitempty"`
	AltText  string         `json:"alt_text,omitempty"`
	Text     *slackText     `json:"text,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackElement struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
	URL  string     `json:"url,omitempty"`
}

// formatNotification builds the webhook message from the upload result.
func formatNotification(in UploadInput, imageURL, jsonURL string) slackMessage {
	summary := fmt.Sprintf("*Workflow:* %s", in.WorkflowName)
	if in.NodeID != "" {
		summary += fmt.Sprintf("\n*Node:* %s", in.NodeID)
	}

	return slackMessage{
		Blocks: []slackBlock{
			{
				Type:     "image",
				ImageURL: imageURL,
				AltText:  "Generated Image",
			},
			{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: summary},
			},
			{
				Type: "actions",
				Elements: []slackElement{
					{
						Type: "button",
						Text: &slackText{Type: "plain_text", Text: "Image", Emoji: true},
						URL:  imageURL,
					},
					{
						Type: "button",
						Text: &slackText{Type: "plain_text", Text: "Metadata JSON", Emoji: true},
						URL:  jsonURL,
					},
				},
			},
		},
	}
}
