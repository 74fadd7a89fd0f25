package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// formField is a plain multipart field sent ahead of the file part
type formField struct {
	name  string
	value string
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// httpAdapter holds the HTTP plumbing shared by the web-host adapters
type httpAdapter struct {
	id        ServiceID
	client    *http.Client
	log       *slog.Logger
	userAgent string
}

func newHTTPAdapter(id ServiceID, opts Options) httpAdapter {
	opts = opts.withDefaults()
	return httpAdapter{
		id:        id,
		client:    opts.HTTPClient,
		log:       opts.Logger.With("service", id.String()),
		userAgent: opts.UserAgent,
	}
}

// Name returns the destination key
func (h *httpAdapter) Name() string {
	return h.id.String()
}

func (h *httpAdapter) fail(kind ErrorKind, detail string, err error) *Error {
	return failure(h.id, kind, detail, err)
}

// get performs a GET request. authorize may be nil.
func (h *httpAdapter) get(ctx context.Context, target string, authorize func(*http.Request)) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, h.fail(KindUnknown, "failed to build request", err)
	}
	if authorize != nil {
		authorize(req)
	}
	return h.do(req)
}

// postFile streams the file at path as multipart/form-data under field, preceded by fields.
func (h *httpAdapter) postFile(ctx context.Context, target, field, path string, fields []formField, authorize func(*http.Request)) (*response, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, h.fail(KindUnknown, "failed to open file", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, h.fail(KindUnknown, "failed to stat file", err)
	}

	head, tail, contentType, err := multipartEnvelope(field, filepath.Base(path), fields)
	if err != nil {
		return nil, h.fail(KindUnknown, "failed to build multipart body", err)
	}

	body := io.MultiReader(bytes.NewReader(head), file, bytes.NewReader(tail))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return nil, h.fail(KindUnknown, "failed to build request", err)
	}
	req.ContentLength = int64(len(head)) + info.Size() + int64(len(tail))
	req.Header.Set("Content-Type", contentType)
	if authorize != nil {
		authorize(req)
	}
	return h.do(req)
}

func (h *httpAdapter) do(req *http.Request) (*response, error) {
	req.Header.Set("User-Agent", h.userAgent)

	h.log.Debug("sending request", "method", req.Method, "url", redactQuery(req.URL.String()))
	resp, err := h.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redactQuery(uerr.URL)
		}
		return nil, h.fail(KindNetwork, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, h.fail(KindNetwork, "failed to read response", err)
	}
	h.log.Debug("received response", "status", resp.StatusCode, "bytes", len(data))

	return &response{status: resp.StatusCode, body: data}, nil
}

// requireOK turns a non-2xx response into a network failure
func (h *httpAdapter) requireOK(resp *response, step string) error {
	if resp.ok() {
		return nil
	}
	detail := fmt.Sprintf("%s returned status %d", step, resp.status)
	if body := snippet(resp.body); body != "" {
		detail += ": " + body
	}
	return h.fail(KindNetwork, detail, nil)
}

// decodeJSON validates body as JSON and returns its root
func (h *httpAdapter) decodeJSON(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, h.fail(KindDecode, "unable to decode response as JSON: "+snippet(body), nil)
	}
	return gjson.ParseBytes(body), nil
}

// multipartEnvelope renders everything around the file bytes so the body can be
// streamed with a known length.
func multipartEnvelope(field, filename string, fields []formField) (head, tail []byte, contentType string, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, nil, "", err
		}
	}
	if _, err := mw.CreateFormFile(field, filename); err != nil {
		return nil, nil, "", err
	}
	head = append([]byte(nil), buf.Bytes()...)

	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, nil, "", err
	}
	tail = append([]byte(nil), buf.Bytes()...)

	return head, tail, mw.FormDataContentType(), nil
}

// withDetail replaces the detail of an adapter error, leaving other errors untouched
func withDetail(err error, detail string) error {
	var uerr *Error
	if errors.As(err, &uerr) {
		uerr.Detail = detail
	}
	return err
}

func snippet(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// redactQuery hides query values, which may carry API keys
func redactQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i] + "?<redacted>"
	}
	return u
}
