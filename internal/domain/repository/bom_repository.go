package repository

import "github.com/misulabs/misu-erp/internal/domain/entity"

// BOMRepository define el puerto de lectura/mantenimiento del BOM.
// ListByProduct devuelve las líneas con el snapshot del componente embebido
// (stock actual incluido); dentro de una tx el snapshot es consistente.
type BOMRepository interface {
	ListByProduct(productID string) ([]*entity.BOMLine, error)
	UpsertLine(line *entity.BOMLine) error
	DeleteLine(id string) error
}
