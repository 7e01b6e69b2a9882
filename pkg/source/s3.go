package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client abstracts the S3 API operations used by [S3]. The [s3.Client]
// type satisfies this interface.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 implements Source over Amazon S3 or any S3-compatible object store
// (MinIO, R2, etc.). Paths map to object keys under an optional prefix;
// a path counts as a directory when keys exist below it.
//
// The caller is responsible for configuring the [s3.Client] with
// credentials, region, and endpoint.
type S3 struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3 creates an S3-backed source. Prefix is prepended to all object
// keys; pass "" for no prefix.
func NewS3(client S3Client, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: strings.TrimSuffix(prefix, "/")}
}

// key builds the full object key for the given source path.
func (s *S3) key(path string) string {
	path = strings.Trim(path, "/")
	if s.prefix == "" {
		return path
	}
	if path == "" {
		return s.prefix
	}
	return s.prefix + "/" + path
}

// Stat describes the named path. An exact object key is a file; a key
// with children is a directory. Missing paths return an error wrapping
// fs.ErrNotExist, matching the Local source.
func (s *S3) Stat(ctx context.Context, path string) (Info, error) {
	key := s.key(path)
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return Info{
			Path: path,
			Name: baseName(path),
			Size: aws.ToInt64(head.ContentLength),
		}, nil
	}
	if !isS3NotFound(err) {
		return Info{}, err
	}

	// Not an object; a directory if anything lives under it.
	out, lerr := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(key + "/"),
		MaxKeys: aws.Int32(1),
	})
	if lerr != nil {
		return Info{}, lerr
	}
	if aws.ToInt32(out.KeyCount) == 0 {
		return Info{}, fmt.Errorf("source: stat %s: %w", path, fs.ErrNotExist)
	}
	return Info{Path: path, Name: baseName(path), Dir: true}, nil
}

// List returns the direct children of dir, one level only, using a
// delimited listing. Common prefixes become directory entries.
func (s *S3) List(ctx context.Context, dir string) ([]Info, error) {
	prefix := s.key(dir)
	if prefix != "" {
		prefix += "/"
	}

	var infos []Info
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, cp := range out.CommonPrefixes {
			sub := strings.TrimSuffix(aws.ToString(cp.Prefix), "/")
			infos = append(infos, Info{
				Path: s.pathFor(sub),
				Name: baseName(sub),
				Dir:  true,
			})
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				continue // the "directory marker" object itself
			}
			infos = append(infos, Info{
				Path: s.pathFor(key),
				Name: baseName(key),
				Size: aws.ToInt64(obj.Size),
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}
	return infos, nil
}

// Open opens the named object for reading via GetObject.
func (s *S3) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("source: open %s: %w", path, fs.ErrNotExist)
		}
		return nil, err
	}
	return out.Body, nil
}

// pathFor converts a full object key back to a source path.
func (s *S3) pathFor(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimPrefix(strings.TrimPrefix(key, s.prefix), "/")
}

func baseName(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// isS3NotFound reports whether err indicates the object does not exist.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// Compile-time interface checks.
var (
	_ Source = Local{}
	_ Source = (*S3)(nil)
)
