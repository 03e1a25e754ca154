// Package s3store lists data lake paths held in an S3 (or S3 compatible)
// bucket. Keys are split on "/" into directories and files; directories
// exist implicitly as key prefixes or explicitly as zero-byte marker keys
// ending in "/".
package s3store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/sagarc03/lakepath"
)

const delimiter = "/"

// API is the subset of the S3 client used by Store.
type API interface {
	s3.HeadObjectAPIClient
	s3.ListObjectsV2APIClient
}

// Store implements lakepath.Storage over one bucket.
type Store struct {
	client API
	bucket string
}

// New creates a Store for bucket.
func New(client API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Exists reports whether path exists as kind. Files are checked with
// HeadObject; directories by listing at most one key below path.
func (s *Store) Exists(ctx context.Context, path string, kind lakepath.PathKind) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if kind == lakepath.KindFile {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(path),
		})
		if err != nil {
			if isNotFoundError(err) {
				return false, nil
			}
			return false, classify(fmt.Sprintf("head '%s'", path), err)
		}
		return true, nil
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(path + delimiter),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, classify(fmt.Sprintf("list '%s'", path), err)
	}
	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

// List returns the entries below base. Every page is drained before
// returning.
func (s *Store) List(ctx context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := ""
	if base != "" {
		prefix = base + delimiter
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if !recursive {
		input.Delimiter = aws.String(delimiter)
	}

	l := newListing(prefix, recursive)
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify(fmt.Sprintf("list '%s'", base), err)
		}
		for _, cp := range page.CommonPrefixes {
			l.addDirectory(strings.TrimSuffix(aws.ToString(cp.Prefix), delimiter), time.Time{})
		}
		for _, obj := range page.Contents {
			l.addObject(aws.ToString(obj.Key), aws.ToInt64(obj.Size), aws.ToTime(obj.LastModified))
		}
	}

	return l.entries, nil
}

// listing accumulates entries in key order, synthesizing the directories
// implied by nested keys when listing recursively.
type listing struct {
	prefix    string
	recursive bool
	entries   []lakepath.Entry
	dirs      map[string]int
}

func newListing(prefix string, recursive bool) *listing {
	return &listing{prefix: prefix, recursive: recursive, dirs: make(map[string]int)}
}

func (l *listing) addDirectory(path string, modified time.Time) {
	if i, ok := l.dirs[path]; ok {
		if !modified.IsZero() {
			l.entries[i].LastModified = modified.UTC()
		}
		return
	}
	l.dirs[path] = len(l.entries)
	l.entries = append(l.entries, lakepath.Entry{
		Path:         path,
		IsDirectory:  true,
		LastModified: modified.UTC(),
	})
}

func (l *listing) addObject(key string, size int64, modified time.Time) {
	if key == l.prefix {
		// marker of the listed directory itself
		return
	}

	rel := strings.TrimPrefix(key, l.prefix)
	if l.recursive {
		segments := strings.Split(strings.TrimSuffix(rel, delimiter), delimiter)
		for i := 1; i < len(segments); i++ {
			l.addDirectory(l.prefix+strings.Join(segments[:i], delimiter), time.Time{})
		}
	}

	if strings.HasSuffix(key, delimiter) {
		l.addDirectory(strings.TrimSuffix(key, delimiter), modified)
		return
	}

	l.entries = append(l.entries, lakepath.Entry{
		Path:          key,
		ContentLength: size,
		LastModified:  modified.UTC(),
	})
}

// isNotFoundError returns true if the error indicates the object doesn't exist.
func isNotFoundError(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	return false
}

// classify wraps err, marking missing buckets as not found and permission
// failures as unauthorized.
func classify(op string, err error) error {
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%s: bucket: %w", op, lakepath.ErrNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return fmt.Errorf("%s: bucket: %w", op, lakepath.ErrNotFound)
		case "AccessDenied", "Forbidden", "403", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
			return fmt.Errorf("%s: %w: %s", op, lakepath.ErrUnauthorized, apiErr.ErrorCode())
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
