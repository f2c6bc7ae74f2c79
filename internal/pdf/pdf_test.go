// AngelaMos | 2026
// pdf_test.go

package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	approved := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	out, err := Render(AssetSlip{
		CompanyName:    "Acme",
		HRName:         "Hana",
		HREmail:        "hr@acme.io",
		EmployeeCount:  4,
		RequesterName:  "Ana",
		RequesterEmail: "ana@acme.io",
		ProductName:    "Laptop",
		ProductType:    "Returnable",
		Quantity:       2,
		Availability:   "Available",
		Status:         "approve",
		RequestedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ApprovedAt:     &approved,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestApprovedDate(t *testing.T) {
	assert.Equal(t, "Not approved", approvedDate(nil))
	d := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "09 Jan 2026", approvedDate(&d))
}
