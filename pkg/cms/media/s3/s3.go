package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyendpoints "github.com/aws/smithy-go/endpoints"

	"github.com/nappsng/cms/pkg/cms"
)

// Config options for the S3-compatible media store
type Config struct {
	Region          string // AWS region
	Bucket          string // bucket name
	AccessKeyID     string // access key ID
	SecretAccessKey string // secret access key
	Endpoint        string // optional custom endpoint for S3-compatible hosts
	UsePathStyle    bool   // use path-style addressing (default: false)
	PublicBaseURL   string // base URL for returned resource URLs; presigned GET when empty
	PresignDuration int    // duration in seconds for presigned URLs (default: 3600)
}

// Store is an S3-compatible implementation of the cms.MediaStore interface.
type Store struct {
	client          *s3.Client
	presignClient   *s3.PresignClient
	bucket          string
	publicBaseURL   string
	presignDuration time.Duration
}

// resolverV2 routes requests for the configured region to a custom endpoint,
// which keeps MinIO and other S3-compatible media hosts working.
type resolverV2 struct {
	endpoint string
	region   string
}

func (r *resolverV2) ResolveEndpoint(ctx context.Context, params s3.EndpointParameters) (smithyendpoints.Endpoint, error) {
	if params.Region != nil && *params.Region == r.region {
		base, err := url.Parse(r.endpoint)
		if err != nil {
			return smithyendpoints.Endpoint{}, err
		}
		return smithyendpoints.Endpoint{URI: *base.JoinPath(*params.Bucket)}, nil
	}
	return s3.NewDefaultEndpointResolverV2().ResolveEndpoint(ctx, params)
}

// New creates a new S3-compatible media store
func New(config Config) (*Store, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.PresignDuration == 0 {
		config.PresignDuration = 3600
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.EndpointResolverV2 = &resolverV2{endpoint: config.Endpoint, region: config.Region}
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Store{
		client:          client,
		presignClient:   s3.NewPresignClient(client),
		bucket:          config.Bucket,
		publicBaseURL:   strings.TrimSuffix(config.PublicBaseURL, "/"),
		presignDuration: time.Duration(config.PresignDuration) * time.Second,
	}, nil
}

// countingReader tracks how many bytes pass through an upload.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// publicID qualifies the caller-supplied identifier with its folder, the
// form later passed back to Delete.
func publicID(opts cms.UploadOptions) string {
	if strings.Contains(opts.PublicID, "/") {
		return opts.PublicID
	}
	return opts.Folder + "/" + opts.PublicID
}

// objectKey builds the bucket key for an upload: the qualified public ID
// plus an extension inferred from the MIME type.
func objectKey(opts cms.UploadOptions) string {
	key := publicID(opts)
	if ext := extensionFromMime(opts.MimeType); ext != "" {
		key += "." + ext
	}
	return key
}

func extensionFromMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "application/pdf":
		return "pdf"
	}
	return ""
}

func resourceTypeFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	}
	return "raw"
}

// Upload stores the payload and returns its stored-resource descriptor.
// Transform options (width, height, crop, quality) are recorded as object
// metadata for the serving layer; the store itself does not transform.
func (s *Store) Upload(ctx context.Context, reader io.Reader, opts cms.UploadOptions) (*cms.StoredResource, error) {
	key := objectKey(opts)
	counter := &countingReader{r: reader}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   counter,
		Metadata: map[string]string{
			"crop":    opts.Crop,
			"quality": opts.Quality,
		},
	}
	if opts.MimeType != "" {
		input.ContentType = aws.String(opts.MimeType)
	}

	uploader := manager.NewUploader(s.client)
	if _, err := uploader.Upload(ctx, input); err != nil {
		return nil, &cms.UploadError{Backend: "s3", Op: "upload", Err: err}
	}

	resourceURL, err := s.resourceURL(ctx, key)
	if err != nil {
		return nil, &cms.UploadError{Backend: "s3", Op: "resolve url", Err: err}
	}

	return &cms.StoredResource{
		URL:          resourceURL,
		PublicID:     publicID(opts),
		Format:       extensionFromMime(opts.MimeType),
		ResourceType: resourceTypeFromMime(opts.MimeType),
		Bytes:        counter.n,
		Width:        opts.Width,
		Height:       opts.Height,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Delete removes every object stored under the public ID. Keys carry an
// extension the caller may not know, so deletion goes through a prefix
// listing.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	list, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(publicID),
	})
	if err != nil {
		return &cms.UploadError{Backend: "s3", Op: "delete", Err: err}
	}

	for _, obj := range list.Contents {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    obj.Key,
		})
		if err != nil {
			return &cms.UploadError{Backend: "s3", Op: "delete", Err: err}
		}
	}

	return nil
}

// resourceURL returns a stable public URL when a base is configured,
// otherwise a presigned GET URL.
func (s *Store) resourceURL(ctx context.Context, key string) (string, error) {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}

	result, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = s.presignDuration
	})
	if err != nil {
		return "", err
	}
	return result.URL, nil
}
