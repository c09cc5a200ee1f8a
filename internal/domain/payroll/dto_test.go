package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestItemRequests_RejectBlankText(t *testing.T) {
	tests := []struct {
		name  string
		req   interface{ Validate() error }
		field string
	}{
		{
			name:  "create with blank type",
			req:   &CreateItemRequest{PayrollID: 1, ItemType: "   ", ItemName: "Bonus", Amount: decimal.NewFromInt(100)},
			field: "itemType",
		},
		{
			name:  "create with blank name",
			req:   &CreateItemRequest{PayrollID: 1, ItemType: "earning", ItemName: "\t", Amount: decimal.NewFromInt(100)},
			field: "itemName",
		},
		{
			name:  "update with blank type",
			req:   &UpdateItemRequest{ID: 2, PayrollID: 1, ItemType: strPtr("  ")},
			field: "itemType",
		},
		{
			name:  "update with blank name",
			req:   &UpdateItemRequest{ID: 2, PayrollID: 1, ItemName: strPtr(" \n ")},
			field: "itemName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verrs validator.ValidationErrors
			require.ErrorAs(t, tt.req.Validate(), &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestUpdateItemRequest_PartialUpdateAccepted(t *testing.T) {
	req := &UpdateItemRequest{ID: 2, PayrollID: 1, ItemType: strPtr("deduction")}
	assert.NoError(t, req.Validate())

	req = &UpdateItemRequest{ID: 2, PayrollID: 1}
	assert.NoError(t, req.Validate())
}
