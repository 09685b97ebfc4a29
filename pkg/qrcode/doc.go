// Package qrcode renders MFA enrollment content as QR code images, either as
// raw PNG bytes or as a data-URI string embeddable directly into HTML.
//
// It is a thin wrapper around github.com/skip2/go-qrcode adding input
// validation and web-friendly output. The primary consumer is pkg/totp, which
// feeds otpauth:// enrollment URIs through Generate during MFA setup.
//
// # Usage
//
//	png, err := qrcode.Generate(uri, 256)
//	dataURI, err := qrcode.GenerateBase64Image(uri, 256)
//
// # Error Handling
//
// ErrEmptyContent flags a blank input; ErrFailedToGenerate wraps encoder
// failures. Compare with errors.Is.
package qrcode
