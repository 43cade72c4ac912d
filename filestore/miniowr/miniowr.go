// Package miniowr provides a MinIO implementation of the filestore.FileStore interface.
package miniowr

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rise-and-shine/docstore/filestore"
)

// Client implements the filestore.FileStore interface using MinIO.
type Client struct {
	client *minio.Client
	bucket string
}

var _ filestore.FileStore = (*Client)(nil)

// New creates a new MinIO filestore client.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Client{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Put uploads a file to the specified key with a known size and content type.
func (c *Client) Put(
	ctx context.Context,
	key string,
	reader io.Reader,
	size int64,
	contentType string,
) (*filestore.FileInfo, error) {
	info, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &filestore.FileInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
		VersionID:    info.VersionID,
		LastModified: info.LastModified,
	}, nil
}

// Get retrieves a file and its metadata from the specified key.
// A non-empty versionID reads the exact stored object version.
func (c *Client) Get(ctx context.Context, key string, versionID string) (*filestore.File, error) {
	opts := minio.GetObjectOptions{VersionID: versionID}

	obj, err := c.client.GetObject(ctx, c.bucket, key, opts)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, errx.Wrap(c.wrapMinioError(err))
	}

	return &filestore.File{
		Content: obj,
		Info: filestore.FileInfo{
			Key:          key,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			ETag:         stat.ETag,
			VersionID:    stat.VersionID,
			LastModified: stat.LastModified,
		},
	}, nil
}

// Delete removes a file at the specified key.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errx.Wrap(c.wrapMinioError(err))
	}
	return nil
}

// Exists checks if a file exists at the specified key.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == codeNoSuchKey {
			return false, nil
		}
		return false, errx.Wrap(err)
	}
	return true, nil
}

// wrapMinioError converts MinIO errors to filestore error codes.
func (c *Client) wrapMinioError(err error) error {
	errResp := minio.ToErrorResponse(err)
	if errResp.Code == codeNoSuchKey || errResp.Code == codeNoSuchVersion {
		return errx.New("file not found", errx.WithCode(filestore.CodeFileNotFound))
	}
	return errx.Wrap(err)
}

const (
	codeNoSuchKey     = "NoSuchKey"
	codeNoSuchVersion = "NoSuchVersion"
)
