// Package minio is the traced S3-compatible object client behind the
// advert attachment store.
//
// Every call runs inside an OpenTelemetry client span. Missing objects and
// buckets are reported as [storage.ErrNotFound]; unreachable servers,
// deadlines and 503 replies as connectivity faults; any other S3 error
// response as a write fault. Errors that are neither network failures nor
// S3 responses are returned unchanged.
package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

const tracerName = "github.com/StricklySoft/jaunts-core/pkg/clients/minio"

// ObjectStore is the part of [*minio.Client] the client wraps.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

var _ ObjectStore = (*minio.Client)(nil)

// Object is a downloaded object with its metadata.
type Object struct {
	Info    minio.ObjectInfo
	Content []byte
}

// Client is safe for concurrent use.
type Client struct {
	store  ObjectStore
	config *Config
	tracer trace.Tracer
}

// NewClient validates cfg, builds the S3 client and makes sure the
// configured bucket exists.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, sserr.Configuration(err, "minio: invalid configuration")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey.Value(), ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, sserr.Configuration(err, "minio: invalid endpoint")
	}

	c := &Client{store: mc, config: &cfg, tracer: otel.Tracer(tracerName)}
	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromStore wraps an existing ObjectStore. A nil cfg uses
// [DefaultConfig].
func NewFromStore(store ObjectStore, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{store: store, config: cfg, tracer: otel.Tracer(tracerName)}
}

// Bucket returns the bucket the client reads and writes.
func (c *Client) Bucket() string {
	return c.config.Bucket
}

// EnsureBucket creates the configured bucket when it does not exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	bucket := c.config.Bucket
	ctx, span := c.startSpan(ctx, "EnsureBucket", "HEAD "+bucket)

	exists, err := c.store.BucketExists(ctx, bucket)
	if err == nil && !exists {
		err = c.store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.config.Region})
		if code := minio.ToErrorResponse(err).Code; code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			err = nil
		}
	}
	finishSpan(span, err)
	return translate(err, "minio: ensure bucket")
}

// PutObject uploads content under key, replacing any existing object.
func (c *Client) PutObject(ctx context.Context, key string, content []byte, contentType string, meta map[string]string) (minio.UploadInfo, error) {
	opts := minio.PutObjectOptions{ContentType: contentType, UserMetadata: meta}
	return c.put(ctx, "PutObject", key, content, opts)
}

// CreateObject uploads content under key only if no object exists there.
// The check is made by the server with If-None-Match, so two racing
// creates cannot both succeed. An occupied key is a
// [storage.KindUniqueness] fault.
func (c *Client) CreateObject(ctx context.Context, key string, content []byte, contentType string, meta map[string]string) (minio.UploadInfo, error) {
	opts := minio.PutObjectOptions{ContentType: contentType, UserMetadata: meta}
	opts.SetMatchETagExcept("")
	return c.put(ctx, "CreateObject", key, content, opts)
}

func (c *Client) put(ctx context.Context, op, key string, content []byte, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	ctx, span := c.startSpan(ctx, op, fmt.Sprintf("PUT %s/%s", c.config.Bucket, key))

	info, err := c.store.PutObject(ctx, c.config.Bucket, key, bytes.NewReader(content), int64(len(content)), opts)
	finishSpan(span, err)
	if err != nil {
		return minio.UploadInfo{}, translate(err, "minio: put object")
	}
	return info, nil
}

// GetObject downloads key in full. A missing key is [storage.ErrNotFound].
func (c *Client) GetObject(ctx context.Context, key string) (*Object, error) {
	ctx, span := c.startSpan(ctx, "GetObject", fmt.Sprintf("GET %s/%s", c.config.Bucket, key))

	obj, err := c.download(ctx, key)
	finishSpan(span, ignoreAbsent(err))
	if err != nil {
		return nil, translate(err, "minio: get object")
	}
	return obj, nil
}

// The S3 request is issued lazily, so absence surfaces from Stat or Read
// rather than from GetObject itself.
func (c *Client) download(ctx context.Context, key string) (*Object, error) {
	o, err := c.store.GetObject(ctx, c.config.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer o.Close()

	info, err := o.Stat()
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(o)
	if err != nil {
		return nil, err
	}
	return &Object{Info: info, Content: content}, nil
}

// StatObject returns the metadata of key. A missing key is
// [storage.ErrNotFound].
func (c *Client) StatObject(ctx context.Context, key string) (minio.ObjectInfo, error) {
	ctx, span := c.startSpan(ctx, "StatObject", fmt.Sprintf("STAT %s/%s", c.config.Bucket, key))

	info, err := c.store.StatObject(ctx, c.config.Bucket, key, minio.StatObjectOptions{})
	finishSpan(span, ignoreAbsent(err))
	if err != nil {
		return minio.ObjectInfo{}, translate(err, "minio: stat object")
	}
	return info, nil
}

// RemoveObject deletes key. S3 does not report missing keys on delete.
func (c *Client) RemoveObject(ctx context.Context, key string) error {
	ctx, span := c.startSpan(ctx, "RemoveObject", fmt.Sprintf("DELETE %s/%s", c.config.Bucket, key))

	err := c.store.RemoveObject(ctx, c.config.Bucket, key, minio.RemoveObjectOptions{})
	finishSpan(span, err)
	return translate(err, "minio: remove object")
}

// Health checks that the server answers, applying [DefaultHealthTimeout]
// when ctx has no deadline.
func (c *Client) Health(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "Health", "HEAD "+c.config.Bucket)
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultHealthTimeout)
		defer cancel()
	}

	_, err := c.store.BucketExists(ctx, c.config.Bucket)
	finishSpan(span, err)
	if err != nil {
		return storage.NewFault(storage.KindConnectivity, "minio: health", err)
	}
	return nil
}

func (c *Client) startSpan(ctx context.Context, op, statement string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "minio."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "minio"),
			attribute.String("db.name", c.config.Bucket),
			attribute.String("db.statement", truncateStatement(statement)),
		),
	)
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func ignoreAbsent(err error) error {
	if isAbsent(err) {
		return nil
	}
	return err
}

// isAbsent reports a missing object. A missing bucket is a deployment
// fault, not an absent record.
func isAbsent(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// translate maps minio-go failures onto the storage vocabulary.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if isAbsent(err) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return storage.NewFault(storage.KindConnectivity, op, err)
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		if resp.Code == "PreconditionFailed" || resp.StatusCode == http.StatusPreconditionFailed {
			return storage.NewFault(storage.KindUniqueness, op, err)
		}
		if resp.StatusCode == http.StatusServiceUnavailable ||
			resp.Code == "XMinioServerNotInitialized" || resp.Code == "NoSuchBucket" {
			return storage.NewFault(storage.KindConnectivity, op, err)
		}
		return storage.NewFault(storage.KindWrite, op, err)
	}
	return err
}
