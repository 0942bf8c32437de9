package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoapi/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{"no endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "b", Bucket: "c"}, "endpoint"},
		{"no credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "c"}, "credentials"},
		{"no bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestURL_PublicBase(t *testing.T) {
	m := &minioStorage{bucket: "images", baseURL: "https://cdn.example.com/images"}
	u, err := m.URL(context.Background(), "menu/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/menu/abc.jpg", u)
}
