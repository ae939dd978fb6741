package sink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginzalimited/orderdesk/internal/order"
	"github.com/ginzalimited/orderdesk/internal/sink"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:              "GNZ-1234-5678",
		OrderDate:       "01/09/2026",
		Branch:          "Mumbai",
		SalesPerson:     "Amit Korgaonkar",
		CustomerPONo:    "PO-77",
		CustomerName:    "Acme Textiles",
		CustomerEmail:   "acme@example.com",
		CustomerContact: "9812345678",
		BillingAddress:  "12 Mill Road",
		DeliveryAddress: "14 Mill Road",
		AccountStatus:   "Clear",
		Transporter:     "FastCargo",
		Timestamp:       1756702800000,
		Items: []order.Item{
			{
				Category:     "CUP",
				ItemName:     "Blue Tape",
				Color:        "STD",
				Width:        "STD",
				UOM:          "MTR",
				Quantity:     5,
				Rate:         100,
				Discount:     0,
				DispatchDate: "2026-09-10",
				Transporter:  "FastCargo",
				Remark:       "urgent",
				Total:        500,
			},
			{
				Category:     "ELASTIC",
				ItemName:     "Soft Elastic",
				Color:        "RED",
				Width:        "10mm",
				UOM:          "ROLL",
				Quantity:     2,
				Rate:         80,
				Discount:     10,
				DispatchDate: "2026-09-12",
				Transporter:  "FastCargo",
				Total:        144,
			},
		},
	}
}

func TestRows_OnePerItemWithOrderFieldsDuplicated(t *testing.T) {
	rows := sink.Rows(sampleOrder())
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Len(t, row, len(sink.Columns))
		assert.Equal(t, "GNZ-1234-5678", row[0])
		assert.Equal(t, "Acme Textiles", row[3])
		assert.Equal(t, "Mumbai", row[22])
	}
	assert.Equal(t, "Blue Tape", rows[0][7])
	assert.Equal(t, "Soft Elastic", rows[1][7])
}

func TestRows_ColumnOrder(t *testing.T) {
	o := sampleOrder()
	rows := sink.Rows(o)
	row := rows[0]

	assert.Equal(t, "PO-77", row[2])
	assert.Equal(t, "acme@example.com", row[4])
	assert.Equal(t, "01/09/2026", row[5])
	assert.Equal(t, "CUP", row[6])
	assert.Equal(t, "MTR", row[10])
	assert.Equal(t, 5.0, row[11])
	assert.Equal(t, 100.0, row[12])
	assert.Equal(t, 0.0, row[13])
	assert.Equal(t, "2026-09-10", row[14])
	assert.Equal(t, "urgent", row[15])
	assert.Equal(t, "9812345678", row[16])
	assert.Equal(t, "FastCargo", row[19])
	assert.Equal(t, "Amit Korgaonkar", row[20])
	assert.Equal(t, "Clear", row[21])
	assert.Equal(t, "PENDING", row[23])
	assert.Equal(t, "Saskhi", row[24])
	assert.Equal(t, "crm.mumbai@ginzalimited.com", row[25])
}

func TestRows_Defaults(t *testing.T) {
	o := sampleOrder()
	o.CustomerPONo = ""
	o.CustomerEmail = ""
	o.AccountStatus = ""
	o.Items = o.Items[:1]
	o.Items[0].Remark = ""
	o.Items[0].Transporter = ""

	row := sink.Rows(o)[0]
	assert.Equal(t, "N/A", row[2])
	assert.Equal(t, "N/A", row[4])
	assert.Equal(t, "N/A", row[15])
	assert.Equal(t, "N/A", row[19])
	assert.Equal(t, "Pending", row[21])
}

func TestRows_UnknownBranchHeadFallsBackToAdministrator(t *testing.T) {
	o := sampleOrder()
	o.Branch = "Pune"
	row := sink.Rows(o)[0]
	assert.Equal(t, "Administrator", row[24])
	assert.Equal(t, "admin@ginzalimited.com", row[25])
}

func TestRows_EmptyOrder(t *testing.T) {
	o := sampleOrder()
	o.Items = nil
	assert.Empty(t, sink.Rows(o))
}
