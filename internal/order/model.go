// Package order holds the draft data model: the order context, the line
// item under composition, the committed batch and the assembled order.
package order

import (
	"time"

	"github.com/gofrs/uuid"
)

// Context is the order-level state of one drafting session. One live
// instance per engine; never shared.
type Context struct {
	OrderID          string `json:"order_id"`
	Branch           string `json:"branch"`
	SalesPerson      string `json:"sales_person"`
	CustomerPONo     string `json:"customer_po_no"`
	Transporter      string `json:"transporter_name"`
	AccountStatus    string `json:"account_status"`
	CustomerName     string `json:"customer_name"`
	CustomerEmail    string `json:"customer_email"`
	CustomerContact  string `json:"customer_contact"`
	BillingAddress   string `json:"billing_address"`
	DeliveryAddress  string `json:"delivery_address"`
	CustomerResolved bool   `json:"customer_resolved"`
}

// ItemDraft is the line item currently being composed or edited.
// Quantity, rate and discount stay as entered text until commit.
type ItemDraft struct {
	Category     string `json:"category"`
	ItemName     string `json:"item_name"`
	ManualItem   bool   `json:"manual_item"`
	Color        string `json:"color"`
	Width        string `json:"width"`
	UOM          string `json:"uom"`
	Quantity     string `json:"quantity"`
	Rate         string `json:"rate"`
	Discount     string `json:"discount"`
	DispatchDate string `json:"dispatch_date"`
	Remark       string `json:"remark"`
}

// NewItemDraft returns an empty draft with the dispatch date defaulted
// to today.
func NewItemDraft() ItemDraft {
	return ItemDraft{DispatchDate: time.Now().Format("2006-01-02")}
}

// Reset clears the transient fields after a commit. Category, UOM and
// dispatch date persist for faster repeated entry.
func (d ItemDraft) Reset() ItemDraft {
	return ItemDraft{
		Category:     d.Category,
		UOM:          d.UOM,
		DispatchDate: d.DispatchDate,
	}
}

// Item is an immutable-once-added batch member.
type Item struct {
	ID           uuid.UUID `json:"id"`
	Category     string    `json:"category"`
	ItemName     string    `json:"item_name"`
	ManualItem   bool      `json:"manual_item"`
	Color        string    `json:"color"`
	Width        string    `json:"width"`
	UOM          string    `json:"uom"`
	Quantity     float64   `json:"quantity"`
	Rate         float64   `json:"rate"`
	Discount     float64   `json:"discount"`
	DispatchDate string    `json:"dispatch_date"`
	Transporter  string    `json:"transport_name"`
	Remark       string    `json:"remark"`
	Total        float64   `json:"total"`
}

// Draft loads the item's fields back into a draft for editing.
func (it Item) Draft() ItemDraft {
	return ItemDraft{
		Category:     it.Category,
		ItemName:     it.ItemName,
		ManualItem:   it.ManualItem,
		Color:        it.Color,
		Width:        it.Width,
		UOM:          it.UOM,
		Quantity:     formatNumber(it.Quantity),
		Rate:         formatNumber(it.Rate),
		Discount:     formatNumber(it.Discount),
		DispatchDate: it.DispatchDate,
		Remark:       it.Remark,
	}
}

// Order is the submission payload: a context snapshot plus the batch
// snapshot. Built only at submit time, never mutated afterwards.
type Order struct {
	ID              string `json:"id"`
	OrderDate       string `json:"order_date"`
	Branch          string `json:"branch"`
	SalesPerson     string `json:"sales_person"`
	CustomerPONo    string `json:"customer_po_no"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerContact string `json:"customer_contact"`
	BillingAddress  string `json:"billing_address"`
	DeliveryAddress string `json:"delivery_address"`
	AccountStatus   string `json:"account_status"`
	Transporter     string `json:"transporter_name"`
	Items           []Item `json:"items"`
	Timestamp       int64  `json:"timestamp"`
}
