package domain

// Supplier is a catalog entry for the order form's supplier dropdown.
type Supplier struct {
	SupplierID string `json:"id"`
	Name       string `json:"name"`
}
