package dto

import "github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"

// ToCategoryResponse convierte la entidad en su DTO de salida.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		ProductCount: c.ProductCount,
	}
}

// ToProductResponse convierte la entidad en su DTO de salida, con la clasificación de stock.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Stock:            p.Stock,
		CategoryID:       p.CategoryID,
		CategoryName:     p.CategoryName,
		Active:           p.Active,
		LowStock:         p.LowStock(),
		AvailableForSale: p.AvailableForSale(),
		StockStatus:      p.StockStatus(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToSaleResponse convierte la entidad en su DTO de salida.
func ToSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	return &SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		CategoryName: s.CategoryName,
		ProductStock: s.ProductStock,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		TotalValue:   s.TotalValue,
		SoldAt:       s.SoldAt,
		Notes:        s.Notes,
	}
}

// ToSaleResponses convierte una lista de ventas.
func ToSaleResponses(list []*entity.Sale) []SaleResponse {
	items := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return items
}
