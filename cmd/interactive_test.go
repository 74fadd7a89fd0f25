package cmd

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestInteractiveUploadThenQuit(t *testing.T) {
	srv, uploads := plainTextHost(t, http.StatusOK, "https://0x0.st/i.txt")
	file := writeFile(t, "i.txt", "interactive")

	prompter := &scriptedPrompter{
		inputs:   []string{"7", "/nonexistent/file.txt", "", file},
		confirms: []bool{false},
	}
	stdout, _, err := runRoot(t, prompter, "--service-config-kv", "endpoint="+srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stdout)
	}

	if uploads.Load() != 1 {
		t.Errorf("expected 1 upload, got %d", uploads.Load())
	}
	if got := strings.Count(stdout, "File not found! Please enter a valid file."); got != 2 {
		t.Errorf("expected 2 file-not-found lines, got %d:\n%s", got, stdout)
	}
	for _, want := range []string{
		"Version: " + Version,
		"Choose the service to upload to:",
		"1. Pixeldrain.com (Requires API)",
		"3. Bashupload.com (Temporary)",
		"7. 0x0.st",
		"Your file URL: https://0x0.st/i.txt",
		"Thank you for using UploadGen!",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestInteractiveContinuesAfterFailure(t *testing.T) {
	srv, uploads := plainTextHost(t, http.StatusServiceUnavailable, "busy")
	file := writeFile(t, "i.txt", "interactive")

	prompter := &scriptedPrompter{
		inputs:   []string{"7", file, "7", file},
		confirms: []bool{true, false},
	}
	stdout, _, err := runRoot(t, prompter, "--service-config-kv", "endpoint="+srv.URL)
	if err != nil {
		t.Fatalf("interactive failures should not end the session with an error: %v", err)
	}
	if uploads.Load() != 2 {
		t.Errorf("expected 2 uploads, got %d", uploads.Load())
	}
	if got := strings.Count(stdout, "[❌] Failed to upload file"); got != 2 {
		t.Errorf("expected 2 failure lines, got %d:\n%s", got, stdout)
	}
}

func TestInteractiveBannerAndNote(t *testing.T) {
	prompter := &scriptedPrompter{inputs: []string{"3"}}
	stdout, _, err := runRoot(t, prompter)
	if err != nil {
		t.Fatalf("interrupt should exit cleanly, got %v", err)
	}
	for _, want := range []string{
		"[3] Bashupload.com (Temporary)",
		"File stored for 3 days and can only be downloaded once.",
		"Program closed!",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestInteractiveInvalidChoice(t *testing.T) {
	for _, choice := range []string{"0", "9", "abc"} {
		t.Run(choice, func(t *testing.T) {
			stdout, _, err := runRoot(t, &scriptedPrompter{inputs: []string{choice}})
			if !errors.Is(err, errReported) {
				t.Fatalf("expected reported failure, got %v", err)
			}
			if !strings.Contains(stdout, "Invalid choice.") {
				t.Errorf("expected invalid choice line:\n%s", stdout)
			}
		})
	}
}

func TestInteractiveInterruptAtMenu(t *testing.T) {
	stdout, _, err := runRoot(t, &scriptedPrompter{})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.Contains(stdout, "Program closed!") {
		t.Errorf("expected farewell on interrupt:\n%s", stdout)
	}
}

func TestInteractiveDevuploadsNote(t *testing.T) {
	prompter := &scriptedPrompter{inputs: []string{"4"}, passwords: []string{""}}
	stdout, _, err := runRoot(t, prompter)
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	for _, want := range []string{
		"[4] Devuploads.com (Requires API)",
		"Devuploads cannot upload files with 0 bytes",
		"API key cannot be empty. Please enter a valid API key.",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if len(prompter.asked) < 3 || !strings.Contains(prompter.asked[1], "Devuploads API key") {
		t.Errorf("unexpected prompts: %v", prompter.asked)
	}
}
