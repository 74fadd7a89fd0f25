package output

// Result is the JSON record of one upload attempt
type Result struct {
	UploadID      string `json:"upload_id"`
	Service       string `json:"service"`
	ServiceID     int    `json:"service_id"`
	File          string `json:"file"`
	Size          int64  `json:"size"`
	Status        string `json:"status"`
	URL           string `json:"url,omitempty"`
	ErrorKind     string `json:"error_kind,omitempty"`
	Error         string `json:"error,omitempty"`
	ExecutionTime int64  `json:"execution_time"`
	Timeout       *int64 `json:"timeout,omitempty"` // in milliseconds

	// Webhook status (only in local output, not sent to webhook)
	WebhookSent  bool   `json:"webhook_sent,omitempty"`
	WebhookError string `json:"webhook_error,omitempty"`
}

// Succeeded reports whether the upload produced a share link
func (r *Result) Succeeded() bool {
	return r.Status == "success"
}
