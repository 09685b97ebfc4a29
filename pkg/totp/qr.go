package totp

import (
	"github.com/praxislegal/trustkit/pkg/qrcode"
)

// QRCode renders an enrollment URI as a scannable PNG image. It is a pure
// transformation with no side effects beyond the returned bytes.
func QRCode(uri string, size int) ([]byte, error) {
	return qrcode.Generate(uri, size)
}

// QRCodeBase64 renders an enrollment URI as a data-URI string suitable for
// direct embedding in an <img> tag during MFA setup.
func QRCodeBase64(uri string, size int) (string, error) {
	return qrcode.GenerateBase64Image(uri, size)
}
