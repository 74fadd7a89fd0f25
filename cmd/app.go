package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/zinc-sig/uploadgen/cmd/helpers"
	"github.com/zinc-sig/uploadgen/internal/logger"
	"github.com/zinc-sig/uploadgen/internal/output"
	"github.com/zinc-sig/uploadgen/internal/runner"
	"github.com/zinc-sig/uploadgen/internal/upload"
	"github.com/zinc-sig/uploadgen/internal/webhook"
)

// app carries the state shared by the single-shot and interactive modes
type app struct {
	opts     *options
	prompter Prompter
	screen   *screen
	stdout   io.Writer
	stderr   io.Writer
	log      *logger.Logger
	settings map[string]any
	webhook  *webhook.Config
}

func newApp(opts *options, s streams) (*app, error) {
	log, err := logger.New(logger.Config{
		Level:   opts.logging.Level,
		Verbose: opts.common.Verbose,
		File:    opts.logging.File,
		Stderr:  s.stderr,
	})
	if err != nil {
		return nil, err
	}

	settings, err := helpers.BuildServiceConfig(&opts.services)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	hook, err := helpers.ParseWebhookConfig(&opts.webhook)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	// With --json, stdout carries only the record
	statusOut := s.stdout
	if opts.common.JSON {
		statusOut = s.stderr
	}

	return &app{
		opts:     opts,
		prompter: s.prompter,
		screen:   &screen{w: statusOut},
		stdout:   s.stdout,
		stderr:   s.stderr,
		log:      log,
		settings: settings,
		webhook:  hook,
	}, nil
}

func (a *app) close() {
	_ = a.log.Close()
}

// credential returns the --api-key value or prompts until a non-empty one is entered
func (a *app) credential(d upload.Descriptor) (string, error) {
	if !d.RequiresCredential {
		return "", nil
	}
	if key := strings.TrimSpace(a.opts.upload.Credential); key != "" {
		return key, nil
	}

	label := d.CredentialLabel
	if label == "" {
		label = d.Name + " API key"
	}
	for {
		key, err := a.prompter.Password(fmt.Sprintf("[🔑] Enter your %s:", label))
		if err != nil {
			return "", promptError(err)
		}
		if key = strings.TrimSpace(key); key != "" {
			return key, nil
		}
		a.screen.problem("API key cannot be empty. Please enter a valid API key.")
	}
}

// upload performs one upload of an already validated file and renders its outcome.
// It reports whether the upload succeeded.
func (a *app) upload(ctx context.Context, d upload.Descriptor, path string, size int64, credential string) (bool, error) {
	adapter, err := helpers.SetupAdapter(d.ID, a.settings, helpers.AdapterOptions(a.log.Logger, "uploadgen/"+Version))
	if err != nil {
		a.screen.problem(err.Error())
		return false, nil
	}

	config := &runner.Config{
		Service:    d.ID,
		FilePath:   path,
		Credential: credential,
		Timeout:    a.opts.common.Timeout,
		Logger:     a.log.Logger,
	}

	if a.opts.common.Verbose {
		helpers.PrintServiceConfig(a.stderr, d.ID, a.settings)
		runner.PrintPreUpload(a.stderr, config, size)
	}

	a.screen.uploading(path, size, d)
	result, err := runner.Execute(ctx, adapter, config)
	if err != nil {
		a.screen.problem(err.Error())
		return false, nil
	}

	if a.opts.common.Verbose {
		runner.PrintPostUpload(a.stderr, result)
	}

	switch result.Status {
	case runner.StatusCancelled:
		return false, errInterrupted
	case runner.StatusSuccess:
		a.screen.uploaded(result.URL)
	case runner.StatusTimeout:
		a.screen.problem(fmt.Sprintf("Upload timed out after %s", config.Timeout))
		fmt.Fprintln(a.screen.w)
	default:
		a.screen.failed(result.Err)
	}

	var timeoutMs int64
	if config.Timeout > 0 {
		timeoutMs = config.Timeout.Milliseconds()
	}
	record := helpers.CreateJSONResult(result, timeoutMs)
	helpers.NotifyWebhook(ctx, a.webhook, record, a.log.Logger)
	if err := a.emit(record); err != nil {
		return false, err
	}

	return record.Succeeded(), nil
}

func (a *app) emit(record *output.Result) error {
	if !a.opts.common.JSON {
		return nil
	}
	return helpers.OutputJSON(a.stdout, record)
}

// promptError maps a survey interrupt to errInterrupted
func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errInterrupted
	}
	return fmt.Errorf("prompt failed: %w", err)
}
