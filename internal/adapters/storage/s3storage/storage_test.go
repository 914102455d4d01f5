package s3storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutObject struct {
	mock.Mock
	body []byte
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		m.body, _ = io.ReadAll(params.Body)
	}
	args := m.Called(ctx, params)
	var out *s3.PutObjectOutput
	if args.Get(0) != nil {
		out = args.Get(0).(*s3.PutObjectOutput)
	}
	return out, args.Error(1)
}

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func fixedNow() time.Time { return time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC) }

func TestUpload_PutsObjectAndReturnsPublicURL(t *testing.T) {
	client := new(mockPutObject)
	st := newStorage(client, config.S3Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com/"}, "avatars")
	st.now = fixedNow

	path := writeTemp(t, "me.PNG", []byte("\x89PNG\r\n\x1a\nimage"))

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "media" &&
			strings.HasPrefix(aws.ToString(in.Key), "avatars/2026/3/7/") &&
			strings.HasSuffix(aws.ToString(in.Key), ".png") &&
			aws.ToString(in.ContentType) == "image/png" &&
			aws.ToInt64(in.ContentLength) == int64(len("\x89PNG\r\n\x1a\nimage"))
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	url, err := st.Upload(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/avatars/2026/3/7/"), url)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\nimage"), client.body)
	client.AssertExpectations(t)
}

func TestUpload_SniffsContentTypeWithoutExtension(t *testing.T) {
	client := new(mockPutObject)
	st := newStorage(client, config.S3Config{Bucket: "media", Endpoint: "http://localhost:9000/"}, "")

	path := writeTemp(t, "blob", []byte("\x89PNG\r\n\x1a\n0000"))

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	url, err := st.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/media/"), url)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n0000"), client.body, "body is rewound after sniffing")
}

func TestUpload_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		client := new(mockPutObject)
		st := newStorage(client, config.S3Config{Bucket: "media"}, "")
		_, err := st.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})

	t.Run("put fails", func(t *testing.T) {
		client := new(mockPutObject)
		st := newStorage(client, config.S3Config{Bucket: "media"}, "")
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := st.Upload(context.Background(), writeTemp(t, "a.jpg", []byte("jpeg")))
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(config.S3Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://minio:9000/b", publicBaseURL(config.S3Config{Bucket: "b", Endpoint: "http://minio:9000"}))
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", publicBaseURL(config.S3Config{Bucket: "b", Region: "eu-west-1"}))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), config.S3Config{Region: "us-east-1"}, "")
	assert.Error(t, err)

	st, err := New(context.Background(), config.S3Config{
		Bucket:       "media",
		Region:       "us-east-1",
		Endpoint:     "http://localhost:9000",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	}, "avatars")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/media", st.baseURL)
}
