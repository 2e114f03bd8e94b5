package entity

import "time"

// StoreSettingsID identificador fijo del único registro de configuración de la tienda.
const StoreSettingsID = 1

// DefaultCompanyName nombre usado al crear la configuración por defecto.
const DefaultCompanyName = "Minha Loja"

// StoreSettings datos de la empresa y dirección de la tienda (registro único).
type StoreSettings struct {
	CompanyName string
	TaxID       string // CNPJ formateado NN.NNN.NNN/NNNN-NN (opcional)
	PostalCode  string // CEP formateado NNNNN-NNN
	Street      string
	Number      string
	Complement  string
	District    string
	City        string
	State       string // UF (2 letras)
	Phone       string
	Email       string
	UpdatedAt   time.Time
}

// NewDefaultStoreSettings construye la configuración inicial.
func NewDefaultStoreSettings(now time.Time) *StoreSettings {
	return &StoreSettings{CompanyName: DefaultCompanyName, UpdatedAt: now}
}

// Address resultado de la consulta de un código postal.
type Address struct {
	PostalCode string
	Street     string
	Complement string
	District   string
	City       string
	State      string
	IBGECode   string
}
