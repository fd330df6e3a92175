// Package r2 implements the upload-and-notify node: it takes a generated
// image plus workflow metadata from the host GUI, uploads both to an
// S3-compatible bucket, optionally posts a webhook notification, and
// returns the public links for display.
package r2

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"r2node/runtime"
)

// Config holds the node configuration with declarative tags. Credential
// fields left empty fall back to the R2_* environment variables at
// invocation time.
type Config struct {
	AccessKeyID     string        `yaml:"access_key_id"`
	SecretAccessKey string        `yaml:"secret_access_key"`
	UploadPath      string        `yaml:"upload_path"`
	Endpoint        string        `yaml:"endpoint" validate:"omitempty,url_format"`
	BucketName      string        `yaml:"bucket_name"`
	Domain          string        `yaml:"domain" validate:"omitempty,domain_name"`
	WebhookURL      string        `yaml:"webhook_url" validate:"omitempty,url_format"`
	NotifyWhen      string        `yaml:"notify_when"`
	ImageFormat     string        `yaml:"image_format" default:"png" validate:"oneof=png jpg jpeg gif bmp tif tiff"`
	WebhookTimeout  time.Duration `yaml:"webhook_timeout" default:"15s" validate:"gte=1s"`
}

// UploadInput is the typed input for the upload task. The image arrives
// base64-encoded from the host's graph-execution step.
type UploadInput struct {
	Image         string         `json:"image" validate:"required"`
	WorkflowName  string         `json:"workflow_name" validate:"required"`
	NodeID        string         `json:"node_id"`
	Timestamp     string         `json:"timestamp"`
	Configuration map[string]any `json:"configuration"`
}

// UploadOutput is returned to the host: the original image for preview
// plus the two public links.
type UploadOutput struct {
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
	JSONURL  string `json:"json_url"`
}

// Plugin implements the upload-and-notify node.
type Plugin struct {
	Config    Config // Exported so the host wiring can set it during initialization
	webhook   *resty.Client
	evaluator *runtime.ExpressionEvaluator
}

// Initialize implements the runtime.Initializer interface.
// Config is already validated by the framework before this is called.
func (p *Plugin) Initialize() error {
	// No retries: notification is best-effort by design.
	p.webhook = resty.New().
		SetTimeout(p.Config.WebhookTimeout).
		SetRetryCount(0)

	p.evaluator = runtime.NewExpressionEvaluator()

	return nil
}

// Shutdown implements the runtime.Shutdowner interface.
func (p *Plugin) Shutdown() error {
	p.webhook = nil
	return nil
}

// Upload is the node's single task. The sequence is strictly linear:
// resolve credentials, validate the image, serialize metadata, upload
// the image, upload the JSON, then optionally notify. Any failure
// before the notification step aborts the invocation; a notification
// failure is logged and swallowed because both artifacts are already
// durably uploaded.
func (p *Plugin) Upload(exec *runtime.Execution, input UploadInput) (UploadOutput, error) {
	creds, err := resolveCredentials(p.Config)
	if err != nil {
		return UploadOutput{}, err
	}

	raw, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		return UploadOutput{}, &ImageError{Reason: fmt.Sprintf("image is not valid base64: %v", err)}
	}

	imageData, ext, err := normalizeImage(raw, p.Config.ImageFormat)
	if err != nil {
		return UploadOutput{}, err
	}

	document, err := buildDocument(input, time.Now())
	if err != nil {
		return UploadOutput{}, err
	}

	store, err := newS3Store(exec, creds)
	if err != nil {
		return UploadOutput{}, &UploadError{Key: creds.UploadPath, Err: err}
	}

	name := contentName(imageData)
	imageKey := fmt.Sprintf("%s/%s.%s", creds.UploadPath, name, ext)
	jsonKey := fmt.Sprintf("%s/%s.json", creds.UploadPath, name)

	if err := store.Put(exec, imageKey, contentTypeFor(ext), imageData); err != nil {
		return UploadOutput{}, &UploadError{Key: imageKey, Err: err}
	}
	slog.InfoContext(exec, "Uploaded image", "key", imageKey, "bytes", len(imageData))

	if err := store.Put(exec, jsonKey, "application/json", document); err != nil {
		return UploadOutput{}, &UploadError{Key: jsonKey, Err: err}
	}
	slog.InfoContext(exec, "Uploaded metadata", "key", jsonKey, "bytes", len(document))

	imageURL := publicURL(creds.Domain, imageKey)
	jsonURL := publicURL(creds.Domain, jsonKey)

	if p.Config.WebhookURL != "" {
		if err := p.notify(exec, input, imageURL, jsonURL); err != nil {
			// Best-effort: both artifacts are uploaded, links are valid.
			slog.ErrorContext(exec, "Webhook notification failed",
				"webhook_url", p.Config.WebhookURL,
				"error", err)
		}
	}

	return UploadOutput{
		Image:    input.Image,
		ImageURL: imageURL,
		JSONURL:  jsonURL,
	}, nil
}

// notify posts the formatted message to the configured webhook. When a
// notify_when condition is set, the webhook only fires if it evaluates
// to true against the workflow metadata.
func (p *Plugin) notify(exec *runtime.Execution, input UploadInput, imageURL, jsonURL string) error {
	if p.Config.NotifyWhen != "" {
		ok, err := p.evaluator.EvalBool(p.Config.NotifyWhen, map[string]any{
			"workflow_name": input.WorkflowName,
			"node_id":       input.NodeID,
			"configuration": input.Configuration,
		})
		if err != nil {
			return &NotificationError{Err: fmt.Errorf("notify_when condition: %w", err)}
		}
		if !ok {
			slog.InfoContext(exec, "Notification skipped by notify_when condition",
				"condition", p.Config.NotifyWhen)
			return nil
		}
	}

	resp, err := p.webhook.R().
		SetContext(exec).
		SetBody(formatNotification(input, imageURL, jsonURL)).
		Post(p.Config.WebhookURL)

	if err != nil {
		return &NotificationError{Err: err}
	}
	if resp.IsError() {
		return &NotificationError{Err: fmt.Errorf("webhook returned %s", resp.Status())}
	}

	slog.InfoContext(exec, "Notification sent", "status", resp.StatusCode())
	return nil
}

func publicURL(domain, key string) string {
	return fmt.Sprintf("https://%s/%s", domain, key)
}
