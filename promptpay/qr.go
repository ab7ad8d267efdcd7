package promptpay

import (
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QRImage renders an EMVCo payload as a square QR code image of the given
// pixel size.
func QRImage(payload string, size int) (image.Image, error) {
	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, err
	}
	return scaled, nil
}
