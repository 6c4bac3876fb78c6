package repository

import "github.com/xpyme/backoffice-api/internal/domain/entity"

// ProductImageRepository define el puerto para las referencias de imágenes.
type ProductImageRepository interface {
	Create(image *entity.ProductImage) error
	ListByProduct(productID string) ([]*entity.ProductImage, error)
	Delete(id string) error
}
