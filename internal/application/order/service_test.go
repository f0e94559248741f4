package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-po-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Put(ctx context.Context, o *domain.PurchaseOrder) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOrderStore) Get(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	if o, _ := args.Get(0).(*domain.PurchaseOrder); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOrderStore) List(ctx context.Context, filter domain.OrderFilter, page domain.PageParams) (*domain.PagedOrders, error) {
	args := m.Called(ctx, filter, page)
	if p, _ := args.Get(0).(*domain.PagedOrders); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOrderStore) Delete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func saveReq() SaveOrderRequest {
	return SaveOrderRequest{
		Code:       "PO-1001",
		Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SupplierID: "1",
		HasVAT:     true,
		Items: []ItemInput{
			{Name: "Paper A4", Quantity: 10, UnitPrice: 12.5},
			{Name: "Toner", Quantity: 2, UnitPrice: 80},
		},
	}
}

// --- tests ---

func TestCreate_NewOrdersStartAsDraft(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	svc := NewService(repo)
	o, err := svc.Create(context.Background(), saveReq())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, o.Status)
	assert.NotEmpty(t, o.OrderID)
	assert.Nil(t, o.SignedByUserID)
	assert.Nil(t, o.SignedAt)
	require.Len(t, o.Items, 2)
	assert.NotEmpty(t, o.Items[0].ItemID)
	assert.InDelta(t, (10*12.5+2*80.0)*1.05, o.TotalAmount(), 0.001)
}

func TestUpdate_PreservesStatusAndSignature(t *testing.T) {
	signer := "u1"
	at := time.Now().UTC().Add(-time.Hour)
	existing := &domain.PurchaseOrder{
		OrderID:        "42",
		Code:           "PO-OLD",
		Status:         domain.StatusSigned,
		SignedByUserID: &signer,
		SignedAt:       &at,
	}

	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "42").Return(existing, nil)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	svc := NewService(repo)
	updated, err := svc.Update(context.Background(), "42", saveReq())

	require.NoError(t, err)
	assert.Equal(t, "PO-1001", updated.Code)
	assert.Equal(t, domain.StatusSigned, updated.Status)
	require.NotNil(t, updated.SignedByUserID)
	assert.Equal(t, "u1", *updated.SignedByUserID)
	assert.Equal(t, at, *updated.SignedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "missing", saveReq())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_HappyPath(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "42").Return(&domain.PurchaseOrder{OrderID: "42"}, nil)
	repo.On("Delete", mock.Anything, "42").Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), "42"))
	repo.AssertCalled(t, "Delete", mock.Anything, "42")
}

func TestList_PassThrough(t *testing.T) {
	want := &domain.PagedOrders{ActualPage: 2, PerPage: 10}
	repo := &mockOrderStore{}
	repo.On("List", mock.Anything, mock.Anything, domain.PageParams{Page: 2, PageSize: 10}).Return(want, nil)

	svc := NewService(repo)
	got, err := svc.List(context.Background(), domain.OrderFilter{}, domain.PageParams{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
