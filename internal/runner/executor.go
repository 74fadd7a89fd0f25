package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zinc-sig/uploadgen/internal/upload"
)

// Status is the outcome of one upload attempt
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusTimeout   Status = "timeout"
	StatusCancelled Status = "cancelled"
)

// ErrNotRegularFile is returned for paths that exist but cannot be uploaded as a file
var ErrNotRegularFile = errors.New("not a regular file")

type Config struct {
	Service    upload.ServiceID
	FilePath   string
	Credential string
	Timeout    time.Duration
	Logger     *slog.Logger
}

type Result struct {
	ID            string
	Service       upload.ServiceID
	FilePath      string
	Size          int64
	URL           string
	Err           error
	Status        Status
	ExecutionTime int64 // milliseconds
}

// ValidateFile resolves path to an absolute path naming an existing regular file and
// returns it with the file size.
func ValidateFile(path string) (string, int64, error) {
	if path == "" {
		return "", 0, fmt.Errorf("file path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", 0, fmt.Errorf("file not found: %s: %w", abs, err)
		}
		return "", 0, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.Mode().IsRegular() {
		return "", 0, fmt.Errorf("%s: %w", abs, ErrNotRegularFile)
	}
	return abs, info.Size(), nil
}

// Execute validates the file and performs exactly one upload through adapter.
// The returned error covers only problems found before the upload started; adapter
// failures are reported in Result.Err.
func Execute(ctx context.Context, adapter upload.Adapter, config *Config) (*Result, error) {
	path, size, err := ValidateFile(config.FilePath)
	if err != nil {
		return nil, err
	}

	log := config.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	result := &Result{
		ID:       uuid.NewString(),
		Service:  config.Service,
		FilePath: path,
		Size:     size,
	}
	log = log.With("upload_id", result.ID, "service", config.Service.String())

	uploadCtx := ctx
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	log.Debug("starting upload", "file", path, "size", size)
	startTime := time.Now()
	res, err := adapter.Upload(uploadCtx, upload.Request{FilePath: path, Credential: config.Credential})
	result.ExecutionTime = time.Since(startTime).Milliseconds()

	switch {
	case err == nil:
		result.Status = StatusSuccess
		result.URL = res.URL
	case ctx.Err() != nil:
		result.Status = StatusCancelled
		result.Err = err
	case errors.Is(uploadCtx.Err(), context.DeadlineExceeded):
		result.Status = StatusTimeout
		result.Err = fmt.Errorf("upload timed out after %s: %w", config.Timeout, err)
	default:
		result.Status = StatusFailed
		result.Err = err
	}

	if result.Err != nil {
		log.Debug("upload failed", "status", result.Status, "kind", upload.KindOf(result.Err), "error", result.Err, "elapsed_ms", result.ExecutionTime)
	} else {
		log.Debug("upload finished", "url", result.URL, "elapsed_ms", result.ExecutionTime)
	}

	return result, nil
}
