// Package storage contains the object storage abstraction used for product
// images and organization documents. Implementations stream from the request
// body straight to the S3-compatible backend and never touch local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyFile is returned when an upload carries no bytes.
	ErrEmptyFile = errors.New("file is empty")
	// ErrTooLarge is returned when an upload exceeds the policy size limit.
	ErrTooLarge = errors.New("file is too large")
	// ErrUnsupportedType is returned when an upload content type is not allowed by the policy.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrObjectNotFound is returned by Get when the key does not exist.
	ErrObjectNotFound = errors.New("object not found")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadPolicy restricts what may be stored under a key prefix.
type UploadPolicy struct {
	Prefix  string
	MaxSize int64
	// Allowed maps an accepted content type to the extension used in object keys.
	Allowed map[string]string
}

// ProductImages accepts common web image formats up to 4 MiB.
var ProductImages = UploadPolicy{
	Prefix:  "products",
	MaxSize: 4 << 20,
	Allowed: map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	},
}

// Documents accepts PDFs and images up to 10 MiB.
var Documents = UploadPolicy{
	Prefix:  "documents",
	MaxSize: 10 << 20,
	Allowed: map[string]string{
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/webp":      ".webp",
		"image/gif":       ".gif",
	},
}

// Check validates an upload and returns its normalized content type and the extension for its key.
// A missing or generic content type is resolved from the filename extension.
func (p UploadPolicy) Check(filename, contentType string, size int64) (string, string, error) {
	if size <= 0 {
		return "", "", ErrEmptyFile
	}
	if size > p.MaxSize {
		return "", "", ErrTooLarge
	}

	ct := normalizeContentType(contentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = normalizeContentType(mime.TypeByExtension(strings.ToLower(path.Ext(filename))))
	}
	ext, ok := p.Allowed[ct]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	return ct, ext, nil
}

// Key builds a fresh object key under the policy prefix, e.g. documents/<scope>/<uuid>.pdf.
// An empty scope is omitted.
func (p UploadPolicy) Key(scope, ext string) string {
	name := uuid.NewString() + ext
	if scope == "" {
		return path.Join(p.Prefix, name)
	}
	return path.Join(p.Prefix, scope, name)
}

func normalizeContentType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	if mt == "image/jpg" {
		return "image/jpeg"
	}
	return mt
}
