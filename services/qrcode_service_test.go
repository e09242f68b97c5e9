// file: services/qrcode_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePageQRCode_Success(t *testing.T) {
	var gotURL string
	encoder := func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
		gotURL = content
		assert.Equal(t, qrcode.Medium, level)
		assert.Equal(t, 256, size)
		return []byte("mock_qr_code_data"), nil
	}

	data, err := GeneratePageQRCode("http://localhost:8080/mental-health", 256, encoder)

	require.NoError(t, err)
	assert.Equal(t, "mock_qr_code_data", string(data))
	assert.Equal(t, "http://localhost:8080/mental-health", gotURL)
}

func TestGeneratePageQRCode_InvalidSize(t *testing.T) {
	data, err := GeneratePageQRCode("http://localhost:8080", 0, nil)

	assert.ErrorIs(t, err, ErrInvalidQRSize)
	assert.Nil(t, data)
}

func TestGeneratePageQRCode_EncoderFails(t *testing.T) {
	failing := func(string, qrcode.RecoveryLevel, int) ([]byte, error) {
		return nil, errors.New("QR code generation failed")
	}

	data, err := GeneratePageQRCode("http://localhost:8080", 200, failing)

	assert.EqualError(t, err, "QR code generation failed")
	assert.Nil(t, data)
}

func TestGeneratePageQRCode_RealEncoder(t *testing.T) {
	data, err := GeneratePageQRCode("http://localhost:8080/activities", 128, nil)

	require.NoError(t, err)
	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}
