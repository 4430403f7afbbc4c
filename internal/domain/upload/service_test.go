// internal/domain/upload/service_test.go
package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

func testService() *Service {
	return NewService(nil, &config.Config{
		Upload: config.UploadConfig{
			MaxSize:           10 * 1024 * 1024,
			AllowedExtensions: []string{"jpg", "jpeg", "png", "gif", "webp"},
		},
	})
}

func TestValidateAcceptsHostedImageURL(t *testing.T) {
	s := testService()
	err := s.validate(&RecordRequest{
		URL:  "https://utfs.io/f/abc123.jpg",
		Size: 2048,
	})
	assert.NoError(t, err)
}

func TestValidateRejectsNonHTTPSURL(t *testing.T) {
	s := testService()
	for _, u := range []string{"http://utfs.io/f/abc.jpg", "ftp://host/file.png", "not a url"} {
		err := s.validate(&RecordRequest{URL: u})
		require.Error(t, err, "url %q", u)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "url %q", u)
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	s := testService()
	err := s.validate(&RecordRequest{
		URL:  "https://utfs.io/f/abc.jpg",
		Size: 11 * 1024 * 1024,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestValidateRejectsDisallowedExtension(t *testing.T) {
	s := testService()
	err := s.validate(&RecordRequest{URL: "https://utfs.io/f/malware.exe"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestValidateFallsBackToOriginalName(t *testing.T) {
	s := testService()

	// Extensionless CDN path with a reported original name.
	err := s.validate(&RecordRequest{
		URL:          "https://utfs.io/f/abc123",
		OriginalName: "harbor.PNG",
	})
	assert.NoError(t, err)

	err = s.validate(&RecordRequest{
		URL:          "https://utfs.io/f/abc123",
		OriginalName: "script.sh",
	})
	assert.Error(t, err)
}
