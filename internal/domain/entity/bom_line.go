package entity

import "github.com/shopspring/decimal"

// BOMLine asocia un producto con un componente y la cantidad de ese componente
// que consume una unidad del producto. Una línea con ComponentID vacío, sin
// snapshot de componente o con QuantityRequired nula/<= 0 es inerte: el motor
// de ensamblaje la omite en validación y en consumo.
type BOMLine struct {
	ID               string
	ProductID        string
	ComponentID      string           // puede estar vacío (referencia rota)
	QuantityRequired *decimal.Decimal // cantidad por unidad terminada; nil = línea inerte
	Component        *Component       // snapshot embebido al leer el BOM
}

// Usable indica si la línea participa en validación y consumo: requiere
// referencia de componente resuelta y cantidad requerida positiva.
func (l *BOMLine) Usable() bool {
	return l.Component != nil && l.QuantityRequired != nil && l.QuantityRequired.GreaterThan(decimal.Zero)
}
