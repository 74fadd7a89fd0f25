package helpers

import (
	"github.com/spf13/cobra"
	"github.com/zinc-sig/uploadgen/cmd/config"
)

// SetupUploadFlags adds the destination, file and credential flags
func SetupUploadFlags(cmd *cobra.Command, flags *config.UploadFlags) {
	cmd.Flags().StringVarP(&flags.Service, "service", "s", "", "Destination number (1-8) or name (e.g. gofile)")
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Path of the file to upload")
	cmd.Flags().StringVarP(&flags.Credential, "api-key", "k", "", "API key or credential for destinations that require one")
}

// SetupServiceConfigFlags adds adapter override flags
func SetupServiceConfigFlags(cmd *cobra.Command, cfg *config.SettingsConfig) {
	cmd.Flags().StringVar(&cfg.JSON, "service-config", "", "Destination settings as JSON string")
	cmd.Flags().StringArrayVar(&cfg.KV, "service-config-kv", nil, "Destination setting key=value pairs (can be used multiple times)")
}

// SetupCommonFlags adds commonly used flags to a command
func SetupCommonFlags(cmd *cobra.Command, flags *config.CommonFlags) {
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Show debug logs and upload summaries on stderr")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the upload record as JSON on stdout")
	cmd.Flags().StringVar(&flags.TimeoutStr, "timeout", "", "Timeout for one upload (e.g., 30s, 2m, 500ms)")
}

// SetupLogFlags adds logging flags
func SetupLogFlags(cmd *cobra.Command, flags *config.LogFlags) {
	cmd.Flags().StringVar(&flags.Level, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.File, "log-file", "", "Also write JSON logs to this file (rotated)")
}

// SetupWebhookFlags adds webhook-related flags to a command
func SetupWebhookFlags(cmd *cobra.Command, cfg *config.WebhookConfig) {
	// Direct configuration flags
	cmd.Flags().StringVar(&cfg.URL, "webhook-url", "", "Webhook URL to send upload records to")
	cmd.Flags().StringVar(&cfg.AuthType, "webhook-auth-type", "none", "Authentication type: none, bearer, api-key")
	cmd.Flags().StringVar(&cfg.AuthToken, "webhook-auth-token", "", "Authentication token (use with --webhook-auth-type)")
	cmd.Flags().StringVar(&cfg.Timeout, "webhook-timeout", "30s", "Timeout for the webhook request")

	// Alternative configuration methods
	cmd.Flags().StringVar(&cfg.Config, "webhook-config", "", "Webhook configuration as JSON string")
	cmd.Flags().StringArrayVar(&cfg.ConfigKV, "webhook-config-kv", nil, "Webhook config key=value pairs (can be used multiple times)")
}
