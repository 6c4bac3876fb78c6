package entity

import "time"

// ProductImage referencia una imagen almacenada externamente. El core solo
// guarda la referencia y valida el tamaño declarado contra el límite
// configurado; el binario vive en el storage de medios.
type ProductImage struct {
	ID        string
	ProductID string
	Sequence  int // única por producto
	URL       string
	SizeBytes int64
	CreatedAt time.Time
}
