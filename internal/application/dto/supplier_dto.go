package dto

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LeadTimeDays  string `json:"leadTimeDays"`
	PaymentTerms  string `json:"paymentTerms"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LeadTimeDays  string `json:"leadTimeDays"`
	PaymentTerms  string `json:"paymentTerms"`
}
