package upload

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxPresignExpiry is the longest validity S3 accepts for a presigned URL
const maxPresignExpiry = 7 * 24 * time.Hour

// S3Adapter uploads to a MinIO or other S3-compatible bucket and returns either a
// public object URL or a presigned download link
type S3Adapter struct {
	log       *slog.Logger
	transport http.RoundTripper

	endpoint  string
	secure    bool
	region    string
	bucket    string
	prefix    string
	publicURL string
	expiry    time.Duration
}

// NewS3Adapter creates a new S3Adapter
func NewS3Adapter(opts Options) *S3Adapter {
	opts = opts.withDefaults()
	return &S3Adapter{
		log:       opts.Logger.With("service", S3.String()),
		transport: opts.HTTPClient.Transport,
	}
}

// Name returns the destination key
func (m *S3Adapter) Name() string {
	return S3.String()
}

// Configure sets up the bucket location. It makes no network calls.
func (m *S3Adapter) Configure(config map[string]any) error {
	// Extract required configuration
	endpoint, ok := getStringValue(config, "endpoint")
	if !ok {
		return fmt.Errorf("s3: endpoint is required")
	}

	bucket, ok := getStringValue(config, "bucket")
	if !ok || bucket == "" {
		return fmt.Errorf("s3: bucket is required")
	}

	// Optional configuration with defaults
	secure := getBoolValue(config, "secure", true)
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint, secure = strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		endpoint, secure = strings.TrimPrefix(endpoint, "http://"), false
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	if endpoint == "" {
		return fmt.Errorf("s3: invalid endpoint URL")
	}

	expiry := maxPresignExpiry
	if raw := getStringValueWithDefault(config, "expiry", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("s3: invalid expiry: %w", err)
		}
		if d <= 0 || d > maxPresignExpiry {
			return fmt.Errorf("s3: expiry must be between 1s and %s", maxPresignExpiry)
		}
		expiry = d
	}

	publicURL := getStringValueWithDefault(config, "public_url", "")
	if publicURL != "" {
		if _, err := url.Parse(publicURL); err != nil {
			return fmt.Errorf("s3: invalid public_url: %w", err)
		}
	}

	m.endpoint = endpoint
	m.secure = secure
	m.region = getStringValueWithDefault(config, "region", "us-east-1")
	m.bucket = bucket
	m.prefix = strings.Trim(getStringValueWithDefault(config, "prefix", ""), "/")
	m.publicURL = publicURL
	m.expiry = expiry

	return nil
}

// Upload checks the bucket, puts the object and returns its share link
func (m *S3Adapter) Upload(ctx context.Context, req Request) (*Result, error) {
	if m.endpoint == "" {
		return nil, failure(S3, KindServerInfoUnavailable, "S3 storage is not configured", nil)
	}

	accessKey, secretKey, ok := parseS3Credential(req.Credential)
	if !ok {
		return nil, failure(S3, KindInvalidCredential, "S3 credentials must be ACCESS_KEY:SECRET_KEY", nil)
	}

	// Create MinIO client
	client, err := minio.New(m.endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:    m.secure,
		Region:    m.region,
		Transport: m.transport,
	})
	if err != nil {
		return nil, failure(S3, KindUnknown, "failed to create client", err)
	}

	// Check if bucket exists
	exists, err := client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, classifyS3Error("failed to check bucket existence", err)
	}
	if !exists {
		return nil, failure(S3, KindServerInfoUnavailable, fmt.Sprintf("bucket %s does not exist", m.bucket), nil)
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, failure(S3, KindUnknown, "failed to open file", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, failure(S3, KindUnknown, "failed to stat file", err)
	}

	objectName := m.objectName(req.FilePath)
	contentType := mime.TypeByExtension(filepath.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	m.log.Debug("putting object", "bucket", m.bucket, "object", objectName, "size", info.Size())
	if _, err := client.PutObject(ctx, m.bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, classifyS3Error(fmt.Sprintf("failed to upload to %s", objectName), err)
	}

	if m.publicURL != "" {
		link, err := url.JoinPath(m.publicURL, objectName)
		if err != nil {
			return nil, failure(S3, KindUnknown, "failed to build public URL", err)
		}
		return &Result{Service: S3, URL: link}, nil
	}

	presigned, err := client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, nil)
	if err != nil {
		return nil, failure(S3, KindUnknown, "failed to presign download URL", err)
	}
	return &Result{Service: S3, URL: presigned.String()}, nil
}

func (m *S3Adapter) objectName(filePath string) string {
	name := filepath.Base(filePath)
	if m.prefix == "" {
		return name
	}
	return path.Join(m.prefix, name)
}

func parseS3Credential(credential string) (accessKey, secretKey string, ok bool) {
	accessKey, secretKey, found := strings.Cut(strings.TrimSpace(credential), ":")
	if !found || accessKey == "" || secretKey == "" {
		return "", "", false
	}
	return accessKey, secretKey, true
}

func classifyS3Error(detail string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return failure(S3, KindInvalidCredential, detail, err)
	case "NoSuchBucket":
		return failure(S3, KindServerInfoUnavailable, detail, err)
	default:
		return failure(S3, KindNetwork, detail, err)
	}
}
