package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/talentsift/screening/pkg/fsx"
)

// S3FileSystem implements fsx.FileSystem on an S3 bucket
type S3FileSystem struct {
	client *s3.Client
	bucket string
}

func New(client *s3.Client, bucket string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
	}
}

func (fs *S3FileSystem) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	stream, err := fs.ReadFileStream(ctx, filePath)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3 object %s: %w", filePath, err)
	}
	return data, nil
}

func (fs *S3FileSystem) ReadFileStream(ctx context.Context, filePath string) (io.ReadCloser, error) {
	out, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("s3 object not found: %s", filePath)
		}
		return nil, fmt.Errorf("failed to get s3 object %s: %w", filePath, err)
	}
	return out.Body, nil
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, filePath string, data []byte) error {
	return fs.WriteFileStream(ctx, filePath, bytes.NewReader(data))
}

func (fs *S3FileSystem) WriteFileStream(ctx context.Context, filePath string, r io.Reader) error {
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(filePath),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("failed to put s3 object %s: %w", filePath, err)
	}
	return nil
}

func (fs *S3FileSystem) DeleteFile(ctx context.Context, filePath string) error {
	_, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		return fmt.Errorf("failed to delete s3 object %s: %w", filePath, err)
	}
	return nil
}

func (fs *S3FileSystem) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head s3 object %s: %w", filePath, err)
	}
	return true, nil
}

func (fs *S3FileSystem) Join(parts ...string) string {
	return fsx.Join(parts...)
}
