package document

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-po-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	order *domain.PurchaseOrder
}

func (f *fakeOrderStore) Get(_ context.Context, orderID string) (*domain.PurchaseOrder, error) {
	if f.order == nil || f.order.OrderID != orderID {
		return nil, domain.ErrNotFound
	}
	return f.order, nil
}

type fakeArchive struct {
	objects map[string]string
	upErr   error
}

func (f *fakeArchive) Upload(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	if f.upErr != nil {
		return "", f.upErr
	}
	data, _ := io.ReadAll(r)
	f.objects[key] = string(data)
	return "s3://bucket/" + key, nil
}

func (f *fakeArchive) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func signedOrder() *domain.PurchaseOrder {
	signer := "u1"
	at := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return &domain.PurchaseOrder{
		OrderID:        "42",
		Code:           "PO-1001",
		Date:           time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SupplierID:     "2",
		HasVAT:         true,
		Status:         domain.StatusSigned,
		SignedByUserID: &signer,
		SignedAt:       &at,
		Items: []domain.PurchaseOrderItem{
			{ItemID: "i1", Name: "Paper A4", Quantity: 10, UnitPrice: 12.5},
		},
	}
}

func TestFetch_UnsignedOrderRejected(t *testing.T) {
	o := signedOrder()
	o.Status = domain.StatusDraft
	svc := NewService(&fakeOrderStore{order: o}, nil)

	_, err := svc.Fetch(context.Background(), "42")
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestFetch_NotFound(t *testing.T) {
	svc := NewService(&fakeOrderStore{}, nil)
	_, err := svc.Fetch(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFetch_RendersAndArchives(t *testing.T) {
	archive := &fakeArchive{objects: map[string]string{}}
	svc := NewService(&fakeOrderStore{order: signedOrder()}, archive)

	body, err := svc.Fetch(context.Background(), "42")
	require.NoError(t, err)
	sheet, _ := io.ReadAll(body)

	assert.Contains(t, string(sheet), "PO-1001")
	assert.Contains(t, string(sheet), "Signed by u1")
	assert.Contains(t, string(sheet), "131.25") // 10 * 12.50 * 1.05
	assert.Contains(t, archive.objects, "orders/42/signed.txt")
}

func TestFetch_ServesArchivedCopy(t *testing.T) {
	archive := &fakeArchive{objects: map[string]string{
		"orders/42/signed.txt": "archived sheet",
	}}
	svc := NewService(&fakeOrderStore{order: signedOrder()}, archive)

	body, err := svc.Fetch(context.Background(), "42")
	require.NoError(t, err)
	sheet, _ := io.ReadAll(body)
	assert.Equal(t, "archived sheet", string(sheet))
}

func TestFetch_ArchiveFailureStillServesSheet(t *testing.T) {
	archive := &fakeArchive{objects: map[string]string{}, upErr: errors.New("bucket gone")}
	svc := NewService(&fakeOrderStore{order: signedOrder()}, archive)

	body, err := svc.Fetch(context.Background(), "42")
	require.NoError(t, err)
	sheet, _ := io.ReadAll(body)
	assert.Contains(t, string(sheet), "PO-1001")
}
