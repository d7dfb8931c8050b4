package entity

import "time"

// Supplier representa un proveedor. Name es único entre todos los proveedores.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	LeadTimeDays  string // texto libre, ej. "3-5 días"
	PaymentTerms  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
