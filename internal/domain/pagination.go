package domain

import "time"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams selects one page of a listing.
type PageParams struct {
	Page     int
	PageSize int
}

// Normalize clamps the parameters to sane values: page >= 1,
// 1 <= page size <= maxPageSize.
func (p PageParams) Normalize() PageParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// OrderFilter narrows an order listing. Nil/empty fields are ignored.
type OrderFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	SupplierID string
}

// Matches reports whether the order passes every set filter field.
func (f OrderFilter) Matches(o *PurchaseOrder) bool {
	if f.DateFrom != nil && o.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && o.Date.After(*f.DateTo) {
		return false
	}
	if f.SupplierID != "" && o.SupplierID != f.SupplierID {
		return false
	}
	return true
}

// PagedOrders is one page of an order listing plus paging metadata.
type PagedOrders struct {
	Data       []PurchaseOrder `json:"data"`
	ActualPage int             `json:"actual_page"`
	MaxPage    int             `json:"max_page"`
	PerPage    int             `json:"per_page"`
	TotalCount int             `json:"total_count"`
}

// NewPagedOrders slices one page out of the already-filtered, already-sorted
// order list and fills in the paging metadata.
func NewPagedOrders(all []PurchaseOrder, p PageParams) *PagedOrders {
	p = p.Normalize()
	total := len(all)
	maxPage := (total + p.PageSize - 1) / p.PageSize
	if maxPage == 0 {
		maxPage = 1
	}
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return &PagedOrders{
		Data:       all[start:end],
		ActualPage: p.Page,
		MaxPage:    maxPage,
		PerPage:    p.PageSize,
		TotalCount: total,
	}
}
