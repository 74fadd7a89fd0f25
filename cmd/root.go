package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/zinc-sig/uploadgen/cmd/config"
	"github.com/zinc-sig/uploadgen/cmd/helpers"
)

// Version is reported in the interactive header and the User-Agent header
var Version = "v1.7"

// errReported marks failures whose status line was already printed
var errReported = errors.New("failure already reported")

// errInterrupted is returned when the user aborts a prompt or an upload
var errInterrupted = errors.New("interrupted")

// options holds every flag of the root command
type options struct {
	upload   config.UploadFlags
	common   config.CommonFlags
	logging  config.LogFlags
	services config.SettingsConfig
	webhook  config.WebhookConfig
}

// streams are the command's collaborators, replaced in tests
type streams struct {
	prompter Prompter
	stdout   io.Writer
	stderr   io.Writer
}

func newRootCmd(s streams) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "uploadgen",
		Short: "Upload a file to a public file host and print the share link",
		Long: `UploadGen uploads a local file to one of several file-hosting services and
prints the resulting share link.

Run without flags for the interactive menu, or pass --service and --file for a
single upload.`,
		Example: `  uploadgen
  uploadgen -s 2 -f ./report.pdf
  uploadgen -s pixeldrain -f ./video.mp4 -k $PIXELDRAIN_KEY --json
  uploadgen -s 8 -f ./backup.tar --service-config-kv endpoint=http://localhost:9000 --service-config-kv bucket=shares`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			timeout, err := helpers.ParseTimeout(opts.common.TimeoutStr)
			if err != nil {
				return err
			}
			opts.common.Timeout = timeout
			opts.webhook.AuthTypeSet = cmd.Flags().Changed("webhook-auth-type")
			opts.webhook.TimeoutSet = cmd.Flags().Changed("webhook-timeout")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, s)
			if err != nil {
				return err
			}
			defer a.close()

			if opts.upload.Service != "" && opts.upload.File != "" {
				err = a.runSingle(cmd.Context())
			} else {
				err = a.runInteractive(cmd.Context())
			}
			if errors.Is(err, errInterrupted) {
				a.screen.info("Program closed!")
				return nil
			}
			return err
		},
	}

	helpers.SetupUploadFlags(cmd, &opts.upload)
	helpers.SetupCommonFlags(cmd, &opts.common)
	helpers.SetupLogFlags(cmd, &opts.logging)
	helpers.SetupServiceConfigFlags(cmd, &opts.services)
	helpers.SetupWebhookFlags(cmd, &opts.webhook)

	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)

	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(streams{
		prompter: DefaultPrompter,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "[❌] %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
