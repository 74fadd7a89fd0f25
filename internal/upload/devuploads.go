package upload

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/tidwall/gjson"
)

// DevuploadsAdapter uploads to devuploads.com. The API key is exchanged for a session
// id and an upload server before the file is sent.
type DevuploadsAdapter struct {
	httpAdapter
	serverEndpoint string
	shareBase      string
}

// NewDevuploadsAdapter creates a new DevuploadsAdapter
func NewDevuploadsAdapter(opts Options) *DevuploadsAdapter {
	return &DevuploadsAdapter{
		httpAdapter:    newHTTPAdapter(Devuploads, opts),
		serverEndpoint: "https://devuploads.com/api/upload/server",
		shareBase:      "https://devuploads.com/",
	}
}

// Configure accepts server_endpoint and share_base overrides
func (d *DevuploadsAdapter) Configure(config map[string]any) error {
	return applyStrings(d.Name(), config, map[string]*string{
		"server_endpoint": &d.serverEndpoint,
		"share_base":      &d.shareBase,
	})
}

// uploadSession is the server-side session granted to a valid API key
type uploadSession struct {
	id        string
	serverURL string
}

// Upload rejects empty files, opens an upload session and uploads the file
func (d *DevuploadsAdapter) Upload(ctx context.Context, req Request) (*Result, error) {
	info, err := os.Stat(req.FilePath)
	if err != nil {
		return nil, d.fail(KindUnknown, "failed to stat file", err)
	}
	if info.Size() == 0 {
		return nil, d.fail(KindEmptyFile, fmt.Sprintf("File %s is empty. Devuploads cannot upload files with 0 bytes", req.FilePath), nil)
	}

	session, err := d.openSession(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	resp, err := d.postFile(ctx, session.serverURL, "file", req.FilePath, []formField{
		{name: "sess_id", value: session.id},
		{name: "utype", value: "reg"},
	}, nil)
	if err != nil {
		return nil, err
	}
	if err := d.requireOK(resp, "upload"); err != nil {
		return nil, err
	}

	doc, err := d.decodeJSON(resp.body)
	if err != nil {
		return nil, err
	}
	if doc.IsArray() {
		doc = doc.Get("0")
	}

	fileCode := doc.Get("file_code")
	switch {
	case fileCode.Type == gjson.String && fileCode.Str == "undef":
		return nil, d.fail(KindProtocolMismatch, "Upload failed: "+doc.Get("file_status").String(), nil)
	case usableFileCode(fileCode):
		return &Result{Service: Devuploads, URL: d.shareBase + fileCode.String()}, nil
	default:
		payload := doc.Raw
		if payload == "" {
			payload = string(resp.body)
		}
		return nil, d.fail(KindProtocolMismatch, "Upload failed: "+payload, nil)
	}
}

func (d *DevuploadsAdapter) openSession(ctx context.Context, key string) (*uploadSession, error) {
	endpoint, err := url.Parse(d.serverEndpoint)
	if err != nil {
		return nil, d.fail(KindUnknown, "invalid server endpoint", err)
	}
	query := endpoint.Query()
	query.Set("key", key)
	endpoint.RawQuery = query.Encode()

	resp, err := d.get(ctx, endpoint.String(), nil)
	if err != nil {
		return nil, withDetail(err, "Failed to check API key")
	}
	if err := d.requireOK(resp, "server lookup"); err != nil {
		return nil, err
	}

	doc, err := d.decodeJSON(resp.body)
	if err != nil {
		return nil, err
	}

	status := doc.Get("status")
	if status.Type != gjson.Number || status.Float() != 200 {
		return nil, d.fail(KindInvalidCredential, "Devuploads API key is invalid! Status code: "+status.String(), nil)
	}
	d.log.Debug("api key accepted")

	session := &uploadSession{
		id:        doc.Get("sess_id").String(),
		serverURL: doc.Get("result").String(),
	}
	if session.id == "" || session.serverURL == "" {
		return nil, d.fail(KindServerInfoUnavailable, "Server information not available. API key valid but server information empty.", nil)
	}
	return session, nil
}

// usableFileCode accepts a non-empty string or a non-zero number
func usableFileCode(code gjson.Result) bool {
	switch code.Type {
	case gjson.String:
		return code.Str != ""
	case gjson.Number:
		return code.Float() != 0
	default:
		return false
	}
}
