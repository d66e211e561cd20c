package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	objects map[string]string
	put     map[string][]byte
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.put == nil {
		f.put = map[string][]byte{}
	}
	f.put[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestDownloadFile(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{"corpus/data.json": `[]`}}

	data, err := DownloadFile(context.Background(), bucket, "corpus", "data.json")
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	_, err = DownloadFile(context.Background(), bucket, "corpus", "missing.json")
	require.ErrorContains(t, err, "s3://corpus/missing.json")
}

func TestUploadFile(t *testing.T) {
	bucket := &fakeBucket{}
	link, err := UploadFile(context.Background(), bucket, "https://s3.example.org", "backups", "db.sql.gz", []byte("dump"))
	require.NoError(t, err)
	require.Equal(t, "https://s3.example.org/backups/db.sql.gz", link)
	require.Equal(t, []byte("dump"), bucket.put["backups/db.sql.gz"])
}
