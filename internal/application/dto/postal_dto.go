package dto

// AddressResponse resultado de GET /api/postal-codes/:cep.
type AddressResponse struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	IBGECode   string `json:"ibge_code"`
}

// PostalHealthResponse resultado de GET /api/postal-codes/health.
type PostalHealthResponse struct {
	Status     string           `json:"status"` // ok | error
	PostalCode string           `json:"postal_code"`
	LatencyMS  int64            `json:"latency_ms"`
	Address    *AddressResponse `json:"address,omitempty"`
	Error      string           `json:"error,omitempty"`
}
