package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by the file system
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3FileSystem implementa fsx.FileSystem sobre un bucket de S3
type S3FileSystem struct {
	client S3API
	bucket string
	prefix string
}

// NewS3FileSystem creates a file system over bucket, with every key placed
// under prefix.
func NewS3FileSystem(client S3API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Bucket returns the configured bucket name
func (f *S3FileSystem) Bucket() string {
	return f.bucket
}

func (f *S3FileSystem) key(p string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" || clean == "" {
		return "", fsx.ErrInvalidPath().WithDetail("path", p)
	}
	if f.prefix == "" {
		return clean, nil
	}
	return f.prefix + "/" + clean, nil
}

// ReadFile downloads an object
func (f *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	key, err := f.key(p)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fsx.ErrFileNotFound().WithDetail("bucket", f.bucket).WithDetail("path", p)
		}
		return nil, errx.Wrap(err, "failed to get s3 object", errx.TypeExternal).
			WithDetail("bucket", f.bucket).
			WithDetail("key", key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read s3 object", errx.TypeExternal).
			WithDetail("bucket", f.bucket).
			WithDetail("path", p)
	}
	return data, nil
}

// Exists checks an object with HeadObject
func (f *S3FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	key, err := f.key(p)
	if err != nil {
		return false, err
	}

	_, err = f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errx.Wrap(err, "failed to head s3 object", errx.TypeExternal).
			WithDetail("bucket", f.bucket).
			WithDetail("key", key)
	}
	return true, nil
}

// WriteFile uploads an object
func (f *S3FileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	key, err := f.key(p)
	if err != nil {
		return err
	}

	_, err = f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return errx.Wrap(err, "failed to put s3 object", errx.TypeExternal).
			WithDetail("bucket", f.bucket).
			WithDetail("key", key)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
