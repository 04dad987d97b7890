package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Archive_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3Archive(ctx, S3Config{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half configured credentials", func(t *testing.T) {
		_, err := NewS3Archive(ctx, S3Config{Bucket: "reports", AccessKeyID: "key"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid", func(t *testing.T) {
		archive, err := NewS3Archive(ctx, S3Config{
			Bucket:          "reports",
			Endpoint:        "http://localhost:9000/",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "reports", archive.Bucket())
	})
}

func TestS3Archive_Store(t *testing.T) {
	var (
		mu          sync.Mutex
		gotMethod   string
		gotPath     string
		gotType     string
		gotBody     []byte
		requestSeen bool
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		requestSeen = true
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	archive, err := NewS3Archive(context.Background(), S3Config{
		Bucket:          "reports",
		Endpoint:        server.URL,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}, nil)
	require.NoError(t, err)

	err = archive.Store(context.Background(), "reports/petty-cash/KSS/kas-kecil.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.True(t, requestSeen)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/reports/reports/petty-cash/KSS/kas-kecil.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotType)
	assert.Contains(t, string(gotBody), "%PDF-1.4")
}

func TestS3Archive_StoreRequiresKey(t *testing.T) {
	archive, err := NewS3Archive(context.Background(), S3Config{
		Bucket: "reports", Endpoint: "http://localhost:9000", AccessKeyID: "k", SecretAccessKey: "s",
	}, nil)
	require.NoError(t, err)

	err = archive.Store(context.Background(), "", "application/pdf", nil)
	assert.Error(t, err)
}
