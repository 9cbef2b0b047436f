package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation services.
type QRCodeService interface {
	// GenerateListQR renders a PNG QR code encoding the share URL of a list.
	GenerateListQR(listID uuid.UUID) ([]byte, error)
}
