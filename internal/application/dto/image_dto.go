package dto

import (
	"time"

	"github.com/xpyme/backoffice-api/internal/domain/entity"
)

// RegisterImageRequest alta de la referencia de una imagen ya subida al
// storage de medios. SizeBytes se valida contra el límite configurado.
type RegisterImageRequest struct {
	Sequence  int    `json:"sequence"`
	URL       string `json:"url" validate:"required"`
	SizeBytes int64  `json:"size_bytes"`
}

// ImageResponse referencia de imagen.
type ImageResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Sequence  int       `json:"sequence"`
	URL       string    `json:"url"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToImageResponse convierte la entidad a DTO.
func ToImageResponse(i *entity.ProductImage) *ImageResponse {
	return &ImageResponse{
		ID:        i.ID,
		ProductID: i.ProductID,
		Sequence:  i.Sequence,
		URL:       i.URL,
		SizeBytes: i.SizeBytes,
		CreatedAt: i.CreatedAt,
	}
}
