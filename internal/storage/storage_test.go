package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutListRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "1-abc123.jpg", strings.NewReader("data"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-abc123.jpg", url)

	b, err := os.ReadFile(filepath.Join(dir, "1-abc123.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1-abc123.jpg"}, names)

	require.NoError(t, s.Remove(ctx, "1-abc123.jpg"))
	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../evil", strings.NewReader(""), 0, "")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, s.Remove(context.Background(), ".."), ErrInvalidName)
}

func TestLocalStore_ListMissingDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = s.List(context.Background())
	assert.Error(t, err)
}

type fakeS3 struct {
	objects map[string]string
	putErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{}
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
		}
	}
	return out, nil
}

func TestS3Store_PutListRemove(t *testing.T) {
	f := &fakeS3{objects: map[string]string{"uploads/nested/x.jpg": "", "other/y.jpg": ""}}
	s := newS3Store(f, "bucket", "uploads/", "https://cdn.example.com/uploads/")
	ctx := context.Background()

	url, err := s.Put(ctx, "a.jpg", strings.NewReader("img"), 3, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/a.jpg", url)
	assert.Equal(t, "img", f.objects["uploads/a.jpg"])

	_, err = s.Put(ctx, "b.png", strings.NewReader("x"), 1, "")
	require.NoError(t, err)

	names, err := s.List(ctx)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"a.jpg", "b.png"}, names)

	require.NoError(t, s.Remove(ctx, "a.jpg"))
	_, ok := f.objects["uploads/a.jpg"]
	assert.False(t, ok)
}

func TestS3Store_PutError(t *testing.T) {
	f := &fakeS3{objects: map[string]string{}, putErr: errors.New("boom")}
	s := newS3Store(f, "bucket", "", "https://cdn")

	_, err := s.Put(context.Background(), "a.jpg", strings.NewReader(""), 0, "")
	assert.ErrorContains(t, err, "boom")
}
