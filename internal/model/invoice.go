package model

import "time"

type InvoiceStatus string

const (
	InvoiceIssued    InvoiceStatus = "issued"
	InvoiceSent      InvoiceStatus = "sent"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	MenuItemID string  `json:"menuItemId,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Total      float64 `json:"total"`
}

// Invoice is the billing document of a completed order. One invoice per order.
type Invoice struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"orderId"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Status        InvoiceStatus `json:"status"`
	EmailTo       string        `json:"emailTo,omitempty"`
	IssuedAt      time.Time     `json:"issuedAt"`
	SentAt        *time.Time    `json:"sentAt,omitempty"`
	CreatedBy     *string       `json:"createdBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// InvoiceView is an invoice together with its order, used for rendering.
type InvoiceView struct {
	Invoice
	Order *Order `json:"order,omitempty"`
}
