package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// SaleTotal calcula el valor total de una línea de venta redondeado a 2 decimales.
// Total = PrecioUnitario * Cantidad
func SaleTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// CheckUnitPrice valida un precio unitario informado: mayor a cero y con a lo sumo 2 decimales.
// Con más decimales el total redondeado dejaría de ser exactamente precio * cantidad.
func CheckUnitPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: el precio unitario debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !price.Equal(price.Round(2)) {
		return fmt.Errorf("%w: el precio unitario admite hasta 2 decimales", domain.ErrInvalidInput)
	}
	return nil
}

// CheckAvailability verifica que el producto esté activo y tenga stock suficiente para la cantidad pedida.
func CheckAvailability(p *entity.Product, quantity int) error {
	if !p.Active {
		return fmt.Errorf("%w: %s", domain.ErrProductInactive, p.Name)
	}
	if p.Stock < quantity {
		return fmt.Errorf("%w: %s tiene %d unidades, se pidieron %d", domain.ErrInsufficientStock, p.Name, p.Stock, quantity)
	}
	return nil
}
