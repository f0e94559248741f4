package supplier

import "github.com/go-po-api/internal/domain"

// Service serves the supplier dropdown catalog. The catalog is static until
// a supplier registry exists.
type Service interface {
	List() []domain.Supplier
}

type service struct{}

func NewService() Service { return &service{} }

func (s *service) List() []domain.Supplier {
	return []domain.Supplier{
		{SupplierID: "1", Name: "Al Fujeirah Bookstore"},
		{SupplierID: "2", Name: "Etisalat Telecommunications"},
		{SupplierID: "3", Name: "ADNOC Distribution"},
	}
}
