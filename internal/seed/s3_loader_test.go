package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"course-market/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.calls = append(f.calls, key)

	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Draft, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Draft, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"bucket/seeds/catalog.jsonl.gz": gzipLines(t, []string{`{"name":"Go","price":10}`}),
		"bucket/seeds/broken.gz":        []byte("plain text"),
	}}
	loader := NewS3LoaderWithClient(client, "bucket", zerolog.Nop())
	ctx := context.Background()

	drafts, err := loader.Load(ctx, "seeds/catalog.jsonl.gz")
	require.NoError(t, err)
	assert.Equal(t, []model.Draft{{Name: "Go", Price: 10}}, drafts)

	_, err = loader.Load(ctx, "seeds/missing.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get object from S3")

	_, err = loader.Load(ctx, "seeds/broken.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read S3 object")
}

func TestFallbackLoader(t *testing.T) {
	s3Drafts := []model.Draft{{Name: "From S3", Price: 1}}
	localDrafts := []model.Draft{{Name: "From disk", Price: 2}}

	tests := []struct {
		name          string
		s3Enabled     bool
		s3Err         error
		nilS3         bool
		expected      []model.Draft
		expectS3Call  bool
		expectFileUse bool
	}{
		{
			name:         "S3 success",
			s3Enabled:    true,
			expected:     s3Drafts,
			expectS3Call: true,
		},
		{
			name:          "S3 fails falls back to local",
			s3Enabled:     true,
			s3Err:         errors.New("S3 connection failed"),
			expected:      localDrafts,
			expectS3Call:  true,
			expectFileUse: true,
		},
		{
			name:          "S3 disabled",
			s3Enabled:     false,
			expected:      localDrafts,
			expectFileUse: true,
		},
		{
			name:          "No S3 loader",
			s3Enabled:     true,
			nilS3:         true,
			expected:      localDrafts,
			expectFileUse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s3Called, fileCalled := false, false

			var remote Loader = &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.Draft, error) {
				s3Called = true
				assert.Equal(t, "seeds/catalog.gz", path, "S3 key should have prefix")
				if tt.s3Err != nil {
					return nil, tt.s3Err
				}
				return s3Drafts, nil
			}}
			if tt.nilS3 {
				remote = nil
			}

			file := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.Draft, error) {
				fileCalled = true
				assert.Equal(t, "catalog.gz", path, "local path should not have prefix")
				return localDrafts, nil
			}}

			loader := NewFallbackLoader(remote, file, "seeds/", tt.s3Enabled, zerolog.Nop())

			drafts, err := loader.Load(context.Background(), "catalog.gz")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, drafts)
			assert.Equal(t, tt.expectS3Call, s3Called)
			assert.Equal(t, tt.expectFileUse, fileCalled)
		})
	}
}
