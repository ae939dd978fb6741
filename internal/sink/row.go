// Package sink delivers assembled orders to the external system of
// record as flattened rows, one per line item, with order-level fields
// duplicated across rows. Dispatch success means the rows were handed
// over locally; durable storage on the remote side is not observable.
package sink

import (
	"time"

	"github.com/ginzalimited/orderdesk/internal/order"
)

// Columns is the fixed, ordered field set of one flattened row. The
// destination is a flat spreadsheet-like store, so ordering matters.
var Columns = []string{
	"Order No", "Timestamp", "Customer PO", "Customer Name", "Customer Email",
	"Order Date", "Unit (Category)", "Item Name", "Color", "Width",
	"Unit (of item)", "Qty", "Rate", "Discount", "Delivery Date",
	"Remark", "Customer Number", "Billing Address", "Delivery Address",
	"Transporter Name", "Sales Person Name", "Account Status", "Branch",
	"Approval Status", "Branch Head Name", "Branch Head Email",
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Rows flattens an order into one row per item, in Columns order.
func Rows(o order.Order) [][]interface{} {
	head := order.BranchHeadFor(o.Branch)
	stamp := time.UnixMilli(o.Timestamp).Format("02/01/2006, 3:04:05 pm")

	rows := make([][]interface{}, 0, len(o.Items))
	for _, it := range o.Items {
		rows = append(rows, []interface{}{
			o.ID,
			stamp,
			orNA(o.CustomerPONo),
			orNA(o.CustomerName),
			orNA(o.CustomerEmail),
			o.OrderDate,
			it.Category,
			it.ItemName,
			orDefault(it.Color, order.StdSentinel),
			orDefault(it.Width, order.StdSentinel),
			it.UOM,
			it.Quantity,
			it.Rate,
			it.Discount,
			it.DispatchDate,
			orNA(it.Remark),
			orNA(o.CustomerContact),
			orNA(o.BillingAddress),
			orNA(o.DeliveryAddress),
			orNA(it.Transporter),
			o.SalesPerson,
			orDefault(o.AccountStatus, "Pending"),
			o.Branch,
			"PENDING",
			head.Name,
			head.Email,
		})
	}
	return rows
}
