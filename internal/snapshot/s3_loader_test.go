package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zerologNop() zerolog.Logger {
	return zerolog.Nop()
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) (*Catalogue, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) (*Catalogue, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

// fakeObjectGetter serves a fixed body or error for every GetObject call.
type fakeObjectGetter struct {
	body   []byte
	err    error
	gotKey string
	gotBkt string
}

func (f *fakeObjectGetter) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = *params.Key
	f.gotBkt = *params.Bucket
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Loader_Load_Success(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleCatalogue()))

	getter := &fakeObjectGetter{body: buf.Bytes()}
	loader := NewS3LoaderWithClient(getter, "prices", zerolog.Nop())

	catalogue, err := loader.Load(context.Background(), "snapshots/catalogue.json.gz")

	require.NoError(t, err)
	assert.Len(t, catalogue.ProductPrices, 2)
	assert.Equal(t, "prices", getter.gotBkt)
	assert.Equal(t, "snapshots/catalogue.json.gz", getter.gotKey)
}

func TestS3Loader_Load_GetObjectError(t *testing.T) {
	getter := &fakeObjectGetter{err: errors.New("access denied")}
	loader := NewS3LoaderWithClient(getter, "prices", zerolog.Nop())

	_, err := loader.Load(context.Background(), "snapshots/catalogue.json.gz")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get object from S3")
}

func TestS3Loader_Load_CorruptBody(t *testing.T) {
	getter := &fakeObjectGetter{body: []byte("garbage")}
	loader := NewS3LoaderWithClient(getter, "prices", zerolog.Nop())

	_, err := loader.Load(context.Background(), "snapshots/catalogue.json.gz")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read snapshot from S3")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			assert.Equal(t, "snapshots/catalogue.json.gz", path, "S3 key should have prefix")
			return sampleCatalogue(), nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "snapshots/", true, zerolog.Nop())

	catalogue, err := fallback.Load(context.Background(), "catalogue.json.gz")
	require.NoError(t, err)
	assert.Len(t, catalogue.ProductPrices, 2)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileCalled := false
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			fileCalled = true
			assert.Equal(t, "catalogue.json.gz", path, "local path should not have prefix")
			return sampleCatalogue(), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "snapshots/", true, zerolog.Nop())

	catalogue, err := fallback.Load(context.Background(), "catalogue.json.gz")
	require.NoError(t, err)
	assert.True(t, fileCalled)
	assert.NotNil(t, catalogue)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			t.Error("S3 loader should not be called when disabled")
			return nil, errors.New("should not be called")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			return sampleCatalogue(), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "snapshots/", false, zerolog.Nop())

	_, err := fallback.Load(context.Background(), "catalogue.json.gz")
	assert.NoError(t, err)
}

func TestFallbackLoader_S3LoaderNil(t *testing.T) {
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			return sampleCatalogue(), nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "snapshots/", true, zerolog.Nop())

	_, err := fallback.Load(context.Background(), "catalogue.json.gz")
	assert.NoError(t, err)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			return nil, errors.New("S3 failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
			return nil, errors.New("local file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "snapshots/", true, zerolog.Nop())

	catalogue, err := fallback.Load(context.Background(), "catalogue.json.gz")
	assert.Error(t, err)
	assert.Nil(t, catalogue)
	assert.Contains(t, err.Error(), "local file not found")
}

func TestFallbackLoader_PrefixHandling(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		path        string
		expectedKey string
	}{
		{name: "with trailing slash", prefix: "snapshots/", path: "catalogue.json.gz", expectedKey: "snapshots/catalogue.json.gz"},
		{name: "nested prefix", prefix: "prod/snapshots/", path: "catalogue.json.gz", expectedKey: "prod/snapshots/catalogue.json.gz"},
		{name: "empty prefix", prefix: "", path: "catalogue.json.gz", expectedKey: "catalogue.json.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotKey string
			s3Loader := &mockLoader{
				loadFunc: func(ctx context.Context, path string) (*Catalogue, error) {
					gotKey = path
					return sampleCatalogue(), nil
				},
			}

			fallback := NewFallbackLoader(s3Loader, &mockLoader{}, tt.prefix, true, zerolog.Nop())

			_, err := fallback.Load(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedKey, gotKey)
		})
	}
}
