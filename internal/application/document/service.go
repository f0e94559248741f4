// Package document renders the printable sheet for a signed purchase order
// and archives it in object storage.
package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-po-api/internal/domain"
)

const contentType = "text/plain; charset=utf-8"

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type orderStore interface {
	Get(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)
}

type Service interface {
	// Fetch returns the printable sheet for a signed order. The rendered
	// sheet is archived on first fetch and served from the archive afterwards.
	Fetch(ctx context.Context, orderID string) (io.ReadCloser, error)
}

type service struct {
	orders  orderStore
	archive objectStore
}

func NewService(orders orderStore, archive objectStore) Service {
	return &service{orders: orders, archive: archive}
}

func (s *service) Fetch(ctx context.Context, orderID string) (io.ReadCloser, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.StatusSigned {
		return nil, fmt.Errorf("order %s is not signed: %w", orderID, domain.ErrConflict)
	}

	key := archiveKey(orderID)
	if s.archive != nil {
		if body, err := s.archive.Download(ctx, key); err == nil {
			return body, nil
		}
	}

	sheet := Render(o)
	if s.archive != nil {
		if _, err := s.archive.Upload(ctx, key, strings.NewReader(sheet), contentType); err != nil {
			slog.Warn("failed to archive signed-order sheet", "order_id", orderID, "err", err)
		}
	}
	return io.NopCloser(strings.NewReader(sheet)), nil
}

func archiveKey(orderID string) string {
	return fmt.Sprintf("orders/%s/signed.txt", orderID)
}

// Render produces the plain-text purchase-order sheet.
func Render(o *domain.PurchaseOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PURCHASE ORDER %s\n", o.Code)
	fmt.Fprintf(&b, "Date: %s\n", o.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Supplier: %s\n\n", o.SupplierID)

	fmt.Fprintf(&b, "%-30s %8s %12s %12s\n", "Item", "Qty", "Unit Price", "Total")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%-30s %8d %12.2f %12.2f\n", it.Name, it.Quantity, it.UnitPrice, it.Total())
	}

	b.WriteString("\n")
	if o.HasVAT {
		b.WriteString("VAT (5%) included.\n")
	}
	fmt.Fprintf(&b, "Total amount: %.2f\n\n", o.TotalAmount())

	if o.SignedByUserID != nil && o.SignedAt != nil {
		fmt.Fprintf(&b, "Signed by %s at %s\n", *o.SignedByUserID, o.SignedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return b.String()
}
