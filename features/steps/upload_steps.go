//go:build integration

package steps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/zinc-sig/uploadgen/internal/upload"

	"github.com/cucumber/godog"
)

// fakeHost stands in for a file host. GET requests are pre-steps, POST requests uploads.
type fakeHost struct {
	server       *httptest.Server
	lookupStatus int
	lookupBody   string
	uploadStatus int
	uploadBody   string
	lookups      atomic.Int32
	uploads      atomic.Int32
}

func newFakeHost() *fakeHost {
	h := &fakeHost{lookupStatus: http.StatusOK, uploadStatus: http.StatusOK}
	h.server = httptest.NewServer(http.HandlerFunc(h.serve))
	return h
}

func (h *fakeHost) serve(w http.ResponseWriter, r *http.Request) {
	status, body := h.lookupStatus, h.lookupBody
	if r.Method == http.MethodPost {
		h.uploads.Add(1)
		if _, _, err := r.FormFile(uploadField(r)); err != nil {
			http.Error(w, "missing file part", http.StatusBadRequest)
			return
		}
		status, body = h.uploadStatus, h.uploadBody
	} else {
		h.lookups.Add(1)
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, strings.ReplaceAll(body, "{{host}}", h.server.URL))
}

func uploadField(r *http.Request) string {
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		if _, ok := r.MultipartForm.File["files[]"]; ok {
			return "files[]"
		}
	}
	return "file"
}

// settings points every endpoint of service at the fake host
func (h *fakeHost) settings(service upload.ServiceID) map[string]any {
	u := h.server.URL
	switch service {
	case upload.Pixeldrain:
		return map[string]any{"check_endpoint": u + "/check", "endpoint": u + "/upload"}
	case upload.GoFile:
		return map[string]any{"servers_endpoint": u + "/servers", "endpoint": u + "/%s/upload"}
	case upload.Bashupload:
		return map[string]any{"endpoint": u + "/"}
	case upload.Devuploads:
		return map[string]any{"server_endpoint": u + "/session"}
	default:
		return map[string]any{"endpoint": u + "/upload"}
	}
}

type uploadContext struct {
	dir     string
	service upload.ServiceID
	host    *fakeHost
	result  *upload.Result
	err     error
}

func InitializeUploadScenario(ctx *godog.ScenarioContext) {
	testCtx := &uploadContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "uploadgen-features-*")
		if err != nil {
			return c, err
		}
		*testCtx = uploadContext{dir: dir}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.host != nil {
			testCtx.host.server.Close()
		}
		_ = os.RemoveAll(testCtx.dir)
		return c, nil
	})

	ctx.Step(`^a fake "([^"]*)" host$`, testCtx.aFakeHost)
	ctx.Step(`^the host answers lookups with status (\d+) and body:$`, testCtx.theHostAnswersLookups)
	ctx.Step(`^the host answers uploads with status (\d+) and body:$`, testCtx.theHostAnswersUploads)
	ctx.Step(`^a file "([^"]*)" containing "([^"]*)"$`, testCtx.aFileContaining)
	ctx.Step(`^an empty file "([^"]*)"$`, testCtx.anEmptyFile)
	ctx.Step(`^I upload "([^"]*)"$`, testCtx.iUpload)
	ctx.Step(`^I upload "([^"]*)" with credential "([^"]*)"$`, testCtx.iUploadWithCredential)
	ctx.Step(`^the share link should be "([^"]*)"$`, testCtx.theShareLinkShouldBe)
	ctx.Step(`^the upload should fail with kind "([^"]*)"$`, testCtx.theUploadShouldFailWithKind)
	ctx.Step(`^the failure should mention "([^"]*)"$`, testCtx.theFailureShouldMention)
	ctx.Step(`^the host should have received (\d+) lookup requests?$`, testCtx.theHostShouldHaveReceivedLookups)
	ctx.Step(`^the host should have received (\d+) upload requests?$`, testCtx.theHostShouldHaveReceivedUploads)
}

func (c *uploadContext) aFakeHost(name string) error {
	d, ok := upload.LookupKey(name)
	if !ok {
		return fmt.Errorf("unknown service %q", name)
	}
	c.service = d.ID
	c.host = newFakeHost()
	return nil
}

func (c *uploadContext) theHostAnswersLookups(status int, body *godog.DocString) error {
	c.host.lookupStatus = status
	c.host.lookupBody = body.Content
	return nil
}

func (c *uploadContext) theHostAnswersUploads(status int, body *godog.DocString) error {
	c.host.uploadStatus = status
	c.host.uploadBody = body.Content
	return nil
}

func (c *uploadContext) aFileContaining(name, content string) error {
	return os.WriteFile(filepath.Join(c.dir, name), []byte(content), 0644)
}

func (c *uploadContext) anEmptyFile(name string) error {
	return os.WriteFile(filepath.Join(c.dir, name), nil, 0644)
}

func (c *uploadContext) iUpload(name string) error {
	return c.iUploadWithCredential(name, "")
}

func (c *uploadContext) iUploadWithCredential(name, credential string) error {
	adapter, err := upload.New(c.service, upload.Options{HTTPClient: c.host.server.Client()})
	if err != nil {
		return err
	}
	if err := adapter.Configure(c.host.settings(c.service)); err != nil {
		return err
	}
	c.result, c.err = adapter.Upload(context.Background(), upload.Request{
		FilePath:   filepath.Join(c.dir, name),
		Credential: credential,
	})
	return nil
}

func (c *uploadContext) theShareLinkShouldBe(expected string) error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	if c.result.URL != expected {
		return fmt.Errorf("expected share link %q, got %q", expected, c.result.URL)
	}
	return nil
}

func (c *uploadContext) theUploadShouldFailWithKind(kind string) error {
	if c.err == nil {
		return fmt.Errorf("expected failure, got share link %q", c.result.URL)
	}
	if got := upload.KindOf(c.err); string(got) != kind {
		return fmt.Errorf("expected kind %q, got %q (%v)", kind, got, c.err)
	}
	return nil
}

func (c *uploadContext) theFailureShouldMention(text string) error {
	if c.err == nil || !strings.Contains(c.err.Error(), text) {
		return fmt.Errorf("expected failure mentioning %q, got %v", text, c.err)
	}
	return nil
}

func (c *uploadContext) theHostShouldHaveReceivedLookups(n int) error {
	if got := int(c.host.lookups.Load()); got != n {
		return fmt.Errorf("expected %d lookup requests, got %d", n, got)
	}
	return nil
}

func (c *uploadContext) theHostShouldHaveReceivedUploads(n int) error {
	if got := int(c.host.uploads.Load()); got != n {
		return fmt.Errorf("expected %d upload requests, got %d", n, got)
	}
	return nil
}
