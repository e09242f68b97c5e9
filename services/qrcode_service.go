// services/qrcode_service.go
package services

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can swap it out.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// ErrInvalidQRSize is returned for a non-positive image size.
var ErrInvalidQRSize = errors.New("invalid size: QR code size must be positive")

// GeneratePageQRCode renders a PNG QR code pointing at url, so a poster in
// a classroom can open a support page directly.
func GeneratePageQRCode(url string, size int, encoder QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidQRSize
	}
	if encoder == nil {
		encoder = qrcode.Encode
	}
	png, err := encoder(url, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
