// AngelaMos | 2026
// seed.go

// Package seed loads a small demo company for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/asset-management/internal/asset"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/payment"
	"github.com/carterperez-dev/asset-management/internal/request"
)

const (
	DemoHREmail  = "hr@demo.assets.dev"
	demoPackage  = "Regular"
	demoGrantRef = "seed-demo-grant"
)

type Employees interface {
	Signup(ctx context.Context, req employee.SignupRequest) (*employee.SignupResponse, error)
}

type Payments interface {
	Grant(ctx context.Context, hrEmail, title, reference string) (*payment.ConfirmResponse, error)
}

type Teams interface {
	AddMultiple(ctx context.Context, hrEmail string, employeeIDs []string) (int, error)
}

type Assets interface {
	Create(ctx context.Context, hrEmail string, req asset.CreateRequest) (string, error)
}

type Requests interface {
	Create(ctx context.Context, email string, req request.CreateRequest) (string, error)
	UpdateStatus(ctx context.Context, callerEmail, id, status string) (int64, error)
}

type Seeder struct {
	Employees Employees
	Payments  Payments
	Teams     Teams
	Assets    Assets
	Requests  Requests
	Logger    *slog.Logger
}

type Result struct {
	Skipped   bool
	Employees int
	Assets    int
	Requests  int
}

var demoStaff = []employee.SignupRequest{
	{Name: "Amara Okafor", Email: "amara@demo.assets.dev", Role: employee.RoleEmployee, DateOfBirth: "1994-03-12"},
	{Name: "Bruno Silva", Email: "bruno@demo.assets.dev", Role: employee.RoleEmployee, DateOfBirth: "1990-07-01"},
	{Name: "Chen Wei", Email: "chen@demo.assets.dev", Role: employee.RoleEmployee, DateOfBirth: "1997-11-23"},
	{Name: "Dana Levi", Email: "dana@demo.assets.dev", Role: employee.RoleEmployee},
}

var demoAssets = []asset.CreateRequest{
	{ProductName: "MacBook Pro 14", ProductType: asset.TypeReturnable, ProductQuantity: 3},
	{ProductName: "27in Monitor", ProductType: asset.TypeReturnable, ProductQuantity: 5},
	{ProductName: "Noise cancelling headset", ProductType: asset.TypeReturnable, ProductQuantity: 1},
	{ProductName: "Notebook pack", ProductType: asset.TypeNonReturnable, ProductQuantity: 40},
	{ProductName: "Printer toner", ProductType: asset.TypeNonReturnable, ProductQuantity: 2},
}

// Run creates the demo HR, pays for a package, hires the demo staff and
// stocks a few assets. A second run finds the HR already registered and
// does nothing.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hr, err := s.Employees.Signup(ctx, employee.SignupRequest{
		Name:        "Harper Quinn",
		Email:       DemoHREmail,
		Role:        employee.RoleHR,
		CompanyName: "Demo Logistics",
		Package:     demoPackage,
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed hr: %w", err)
	}
	if hr.InsertedID == nil {
		logger.InfoContext(ctx, "demo data already present", "hr_email", DemoHREmail)
		return Result{Skipped: true}, nil
	}

	if _, err := s.Payments.Grant(ctx, DemoHREmail, demoPackage, demoGrantRef); err != nil {
		return Result{}, fmt.Errorf("seed package: %w", err)
	}

	var res Result
	ids := make([]string, 0, len(demoStaff))
	for _, req := range demoStaff {
		resp, err := s.Employees.Signup(ctx, req)
		if err != nil {
			return res, fmt.Errorf("seed employee %s: %w", req.Email, err)
		}
		if resp.InsertedID != nil {
			ids = append(ids, *resp.InsertedID)
		}
	}

	// The last employee stays unaffiliated so the add-member screens have
	// someone to show.
	hired := ids
	if len(hired) > 1 {
		hired = hired[:len(hired)-1]
	}
	if res.Employees, err = s.Teams.AddMultiple(ctx, DemoHREmail, hired); err != nil {
		return res, fmt.Errorf("seed team: %w", err)
	}

	assetIDs := make([]string, 0, len(demoAssets))
	for _, req := range demoAssets {
		id, err := s.Assets.Create(ctx, DemoHREmail, req)
		if err != nil {
			return res, fmt.Errorf("seed asset %s: %w", req.ProductName, err)
		}
		assetIDs = append(assetIDs, id)
	}
	res.Assets = len(assetIDs)

	requester := demoStaff[0].Email
	laptopReq, err := s.Requests.Create(ctx, requester, request.CreateRequest{
		AssetID: assetIDs[0],
		Notes:   "Onboarding laptop",
	})
	if err != nil {
		return res, fmt.Errorf("seed request: %w", err)
	}
	if _, err := s.Requests.UpdateStatus(ctx, DemoHREmail, laptopReq, request.StatusApprove); err != nil {
		return res, fmt.Errorf("seed approval: %w", err)
	}
	if _, err := s.Requests.Create(ctx, requester, request.CreateRequest{AssetID: assetIDs[3]}); err != nil {
		return res, fmt.Errorf("seed request: %w", err)
	}
	res.Requests = 2

	logger.InfoContext(ctx, "demo data seeded",
		"hr_email", DemoHREmail,
		"employees", res.Employees,
		"assets", res.Assets,
		"requests", res.Requests,
	)
	return res, nil
}
