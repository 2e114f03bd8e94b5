package dto

import "time"

// UpdateSettingsRequest entrada de PUT /api/settings.
type UpdateSettingsRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	TaxID       string `json:"tax_id" validate:"max=18"` // CNPJ, con o sin máscara
	PostalCode  string `json:"postal_code" validate:"required,max=9"`
	Street      string `json:"street" validate:"required,max=300"`
	Number      string `json:"number" validate:"max=10"`
	Complement  string `json:"complement" validate:"max=100"`
	District    string `json:"district" validate:"max=100"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,len=2"`
	Phone       string `json:"phone" validate:"max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// SettingsResponse configuración de la tienda.
type SettingsResponse struct {
	CompanyName string    `json:"company_name"`
	TaxID       string    `json:"tax_id"`
	PostalCode  string    `json:"postal_code"`
	Street      string    `json:"street"`
	Number      string    `json:"number"`
	Complement  string    `json:"complement"`
	District    string    `json:"district"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	UpdatedAt   time.Time `json:"updated_at"`
}
