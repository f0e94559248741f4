package domain

import "time"

// OrderStatus is the purchase-order lifecycle state.
type OrderStatus string

const (
	StatusDraft            OrderStatus = "draft"
	StatusPendingSignature OrderStatus = "pending_signature"
	StatusSigned           OrderStatus = "signed"
	StatusRejected         OrderStatus = "rejected"
)

// vatMultiplier is applied to the order total when the order carries VAT.
const vatMultiplier = 1.05

// PurchaseOrderItem is a single line item. Items are embedded in the order
// document rather than stored in their own table.
type PurchaseOrderItem struct {
	ItemID    string  `json:"item_id" dynamodbav:"item_id"`
	Name      string  `json:"name" dynamodbav:"name"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity"`
	UnitPrice float64 `json:"unit_price" dynamodbav:"unit_price"`
}

// Total is the line total: quantity times unit price.
func (i PurchaseOrderItem) Total() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// PurchaseOrder is an order a supplier fulfils. SignedByUserID and SignedAt
// are set together, exactly once, on the transition into StatusSigned; the
// signature flow is the only writer of those fields.
type PurchaseOrder struct {
	OrderID        string              `json:"id" dynamodbav:"order_id"`
	Code           string              `json:"code" dynamodbav:"code"`
	Date           time.Time           `json:"date" dynamodbav:"date"`
	SupplierID     string              `json:"supplier_id" dynamodbav:"supplier_id"`
	HasVAT         bool                `json:"has_vat" dynamodbav:"has_vat"`
	Status         OrderStatus         `json:"status" dynamodbav:"status"`
	SignedByUserID *string             `json:"signed_by_user_id,omitempty" dynamodbav:"signed_by_user_id"`
	SignedAt       *time.Time          `json:"signed_at,omitempty" dynamodbav:"signed_at"`
	Items          []PurchaseOrderItem `json:"items" dynamodbav:"items"`
	CreatedAt      time.Time           `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time           `json:"updated" dynamodbav:"updated_at"`
}

// TotalAmount sums the line totals, with VAT applied when the order has it.
func (o *PurchaseOrder) TotalAmount() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Total()
	}
	if o.HasVAT {
		return sum * vatMultiplier
	}
	return sum
}
