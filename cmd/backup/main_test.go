package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBucket struct {
	objects []types.Object
	deleted []string
	failOn  string
}

func (f *fakeBucket) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeBucket) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var out []types.Object
	for _, o := range f.objects {
		if strings.HasPrefix(aws.ToString(o.Key), aws.ToString(in.Prefix)) {
			out = append(out, o)
		}
	}
	return &s3.ListObjectsV2Output{Contents: out}, nil
}

func (f *fakeBucket) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	key := aws.ToString(in.Key)
	if key == f.failOn {
		return nil, errors.New("denied")
	}
	f.deleted = append(f.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

func object(key string, age time.Duration) types.Object {
	return types.Object{Key: aws.String(key), LastModified: aws.Time(time.Now().Add(-age))}
}

func TestRotateBackups(t *testing.T) {
	bucket := &fakeBucket{objects: []types.Object{
		object("college-state-a", 4*time.Hour),
		object("college-state-b", 1*time.Hour),
		object("college-state-c", 3*time.Hour),
		object("college-state-d", 2*time.Hour),
		object("other-e", 10*time.Hour),
	}}
	cfg := BackupConfig{BackupBucket: "b", BackupPrefix: "college-state-", KeepBackups: 2}

	deleted, err := rotateBackups(context.Background(), bucket, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, deleted)
	require.ElementsMatch(t, []string{"college-state-a", "college-state-c"}, bucket.deleted)
}

func TestRotateBackupsNothingToDo(t *testing.T) {
	bucket := &fakeBucket{objects: []types.Object{object("college-state-a", time.Hour)}}
	cfg := BackupConfig{BackupBucket: "b", BackupPrefix: "college-state-", KeepBackups: 4}

	deleted, err := rotateBackups(context.Background(), bucket, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Zero(t, deleted)
	require.Empty(t, bucket.deleted)
}

func TestRotateBackupsDeleteFailure(t *testing.T) {
	bucket := &fakeBucket{
		objects: []types.Object{
			object("college-state-a", 3*time.Hour),
			object("college-state-b", 2*time.Hour),
			object("college-state-c", 1*time.Hour),
		},
		failOn: "college-state-a",
	}
	cfg := BackupConfig{BackupBucket: "b", BackupPrefix: "college-state-", KeepBackups: 1}

	deleted, err := rotateBackups(context.Background(), bucket, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 1, deleted)
	require.Equal(t, []string{"college-state-b"}, bucket.deleted)
}

func TestBackupKeyAndGzip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	require.Equal(t, "college-state-2026-03-01T12-30-00Z.sql.gz", backupKey("college-state-", now))

	data, err := gzipStream(strings.NewReader("CREATE TABLE preferences;"))
	require.NoError(t, err)
	gz, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE preferences;", string(plain))
}
