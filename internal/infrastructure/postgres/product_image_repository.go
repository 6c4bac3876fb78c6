package postgres

import (
	"context"
	"fmt"

	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)

// ProductImageRepo implementación de ProductImageRepository sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador.
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

// Create persiste la referencia de una imagen. La secuencia es única por producto.
func (r *ProductImageRepo) Create(image *entity.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, sequence, url, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		image.ID, image.ProductID, image.Sequence, image.URL, image.SizeBytes, image.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// ListByProduct lista las imágenes de un producto en orden de secuencia.
func (r *ProductImageRepo) ListByProduct(productID string) ([]*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, sequence, url, size_bytes, created_at
		FROM product_images WHERE product_id = $1 ORDER BY sequence`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Sequence, &img.URL, &img.SizeBytes, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}

// Delete elimina la referencia de una imagen.
func (r *ProductImageRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}
	return nil
}
