package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/zinc-sig/uploadgen/internal/output"
	"github.com/zinc-sig/uploadgen/internal/runner"
	"github.com/zinc-sig/uploadgen/internal/upload"
	"github.com/zinc-sig/uploadgen/internal/webhook"
)

// CreateJSONResult converts a runner result into the output record
func CreateJSONResult(result *runner.Result, timeoutMs int64) *output.Result {
	jsonResult := &output.Result{
		UploadID:      result.ID,
		Service:       result.Service.String(),
		ServiceID:     int(result.Service),
		File:          result.FilePath,
		Size:          result.Size,
		Status:        string(result.Status),
		URL:           result.URL,
		ExecutionTime: result.ExecutionTime,
	}

	if result.Err != nil {
		jsonResult.ErrorKind = string(upload.KindOf(result.Err))
		jsonResult.Error = result.Err.Error()
	}

	// Add timeout if it was set
	if timeoutMs > 0 {
		jsonResult.Timeout = &timeoutMs
	}

	return jsonResult
}

// OutputJSON marshals and prints the result as JSON
func OutputJSON(w io.Writer, result *output.Result) error {
	jsonOutput, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(jsonOutput))
	return err
}

// NotifyWebhook sends the record to the webhook when one is configured and
// records the delivery outcome on result. Delivery failures never fail the upload.
func NotifyWebhook(ctx context.Context, config *webhook.Config, result *output.Result, log *slog.Logger) {
	if config == nil || config.URL == "" {
		return
	}

	client := webhook.NewClient(config, log)

	// Create a copy of result without webhook fields for sending
	payload := *result
	payload.WebhookSent = false
	payload.WebhookError = ""

	if err := client.Send(ctx, &payload); err != nil {
		log.Warn("webhook delivery failed", "upload_id", result.UploadID, "error", err)
		result.WebhookSent = false
		result.WebhookError = err.Error()
		return
	}
	result.WebhookSent = true
}
