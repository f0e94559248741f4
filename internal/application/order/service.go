package order

import (
	"context"
	"time"

	"github.com/go-po-api/internal/domain"
	"github.com/go-po-api/internal/pkg/id"
)

// ItemInput is one line item on a create/update request.
type ItemInput struct {
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gt=0"`
}

// SaveOrderRequest is the create/update payload for a purchase order.
type SaveOrderRequest struct {
	Code       string      `json:"code" validate:"required,max=50"`
	Date       time.Time   `json:"date" validate:"required"`
	SupplierID string      `json:"supplier_id" validate:"required"`
	HasVAT     bool        `json:"has_vat"`
	Items      []ItemInput `json:"items" validate:"required,min=1,dive"`
}

type Service interface {
	List(ctx context.Context, filter domain.OrderFilter, page domain.PageParams) (*domain.PagedOrders, error)
	Get(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)
	Create(ctx context.Context, req SaveOrderRequest) (*domain.PurchaseOrder, error)
	Update(ctx context.Context, orderID string, req SaveOrderRequest) (*domain.PurchaseOrder, error)
	Delete(ctx context.Context, orderID string) error
}

type orderStore interface {
	Put(ctx context.Context, o *domain.PurchaseOrder) error
	Get(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)
	List(ctx context.Context, filter domain.OrderFilter, page domain.PageParams) (*domain.PagedOrders, error)
	Delete(ctx context.Context, orderID string) error
}

type service struct {
	repo orderStore
}

func NewService(repo orderStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter domain.OrderFilter, page domain.PageParams) (*domain.PagedOrders, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	return s.repo.Get(ctx, orderID)
}

func (s *service) Create(ctx context.Context, req SaveOrderRequest) (*domain.PurchaseOrder, error) {
	now := time.Now().UTC()
	o := &domain.PurchaseOrder{
		OrderID:    id.New(),
		Code:       req.Code,
		Date:       req.Date,
		SupplierID: req.SupplierID,
		HasVAT:     req.HasVAT,
		Status:     domain.StatusDraft, // new orders always start as drafts
		Items:      buildItems(req.Items),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the editable fields and line items. Status and the
// signature columns are never touched here; only the signing flow writes them.
func (s *service) Update(ctx context.Context, orderID string, req SaveOrderRequest) (*domain.PurchaseOrder, error) {
	existing, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	existing.Code = req.Code
	existing.Date = req.Date
	existing.SupplierID = req.SupplierID
	existing.HasVAT = req.HasVAT
	existing.Items = buildItems(req.Items)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Put(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) Delete(ctx context.Context, orderID string) error {
	if _, err := s.repo.Get(ctx, orderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, orderID)
}

func buildItems(inputs []ItemInput) []domain.PurchaseOrderItem {
	items := make([]domain.PurchaseOrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.PurchaseOrderItem{
			ItemID:    id.New(),
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		})
	}
	return items
}
