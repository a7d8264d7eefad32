package s3infra

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/findr-api/internal/config"
)

func TestItemImageKey(t *testing.T) {
	key := ItemImageKey("user-1")
	assert.True(t, strings.HasPrefix(key, "items/user-1/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, ItemImageKey("user-1"))
}

func TestObjectURLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		base string
	}{
		{"aws", config.Config{S3BucketName: "photos", AWSRegion: "eu-west-1"}, "https://photos.s3.eu-west-1.amazonaws.com"},
		{"localstack", config.Config{S3BucketName: "photos", AWSEndpointURL: "http://localhost:4566/"}, "http://localhost:4566/photos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil, &tt.cfg)
			assert.Equal(t, tt.base, s.baseURL)

			key, ok := s.KeyFromURL(tt.base + "/items/user-1/abc.jpg")
			assert.True(t, ok)
			assert.Equal(t, "items/user-1/abc.jpg", key)

			_, ok = s.KeyFromURL("https://picsum.photos/400/300")
			assert.False(t, ok)
		})
	}
}
