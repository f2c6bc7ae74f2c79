// AngelaMos | 2026
// pdf.go

package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const dateLayout = "02 Jan 2006"

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// AssetSlip is everything printed on an asset request slip.
type AssetSlip struct {
	CompanyName    string
	HRName         string
	HREmail        string
	EmployeeCount  int
	RequesterName  string
	RequesterEmail string
	ProductName    string
	ProductType    string
	Quantity       int
	Availability   string
	Status         string
	RequestedAt    time.Time
	ApprovedAt     *time.Time
	PrintedAt      time.Time
}

// Render lays the slip out on one A4 page and returns the PDF bytes.
func Render(slip AssetSlip) ([]byte, error) {
	if slip.PrintedAt.IsZero() {
		slip.PrintedAt = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Asset request "+slip.ProductName, true).
		WithAuthor(slip.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionTitle("Company"))
	m.AddRows(
		field("Company name", slip.CompanyName),
		field("HR name", slip.HRName),
		field("HR email", slip.HREmail),
		field("Total employees", strconv.Itoa(slip.EmployeeCount)),
	)
	m.AddRows(sectionTitle("Requested by"))
	m.AddRows(
		field("Name", slip.RequesterName),
		field("Email", slip.RequesterEmail),
	)
	m.AddRows(sectionTitle("Asset"))
	m.AddRows(
		field("Product name", slip.ProductName),
		field("Product type", slip.ProductType),
		field("Quantity", strconv.Itoa(slip.Quantity)),
		field("Availability", slip.Availability),
		field("Status", slip.Status),
		field("Requested date", slip.RequestedAt.Format(dateLayout)),
		field("Approved date", approvedDate(slip.ApprovedAt)),
	)
	m.AddRows(line.NewRow(6, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Printed "+slip.PrintedAt.Format(time.RFC1123), props.Text{
			Size: 8, Align: align.Right, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate asset slip: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(slip AssetSlip) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(slip.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("ASSET REQUEST", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 4,
		}),
	))
}

func field(label, value string) core.Row {
	if value == "" {
		value = "-"
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(label, props.Text{Size: 9, Color: colorGray, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 10, Top: 1})),
	)
}

func approvedDate(t *time.Time) string {
	if t == nil {
		return "Not approved"
	}
	return t.Format(dateLayout)
}
