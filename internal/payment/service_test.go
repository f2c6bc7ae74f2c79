// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/events"
	"github.com/carterperez-dev/asset-management/internal/plan"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LockHR(ctx context.Context, email string) (*employee.Employee, error) {
	args := m.Called(ctx, email)
	e, _ := args.Get(0).(*employee.Employee)
	return e, args.Error(1)
}

func (m *mockRepository) Insert(ctx context.Context, p *Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepository) ApplyPackage(ctx context.Context, hrID string, pkg plan.Package) (int, error) {
	args := m.Called(ctx, hrID, pkg)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) ListByHR(ctx context.Context, email string, page core.PageParams) ([]Payment, int, error) {
	args := m.Called(ctx, email, page)
	list, _ := args.Get(0).([]Payment)
	return list, args.Int(1), args.Error(2)
}

type fakeGateway struct {
	intents map[string]*Intent
	created []int64
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, md map[string]string) (*Intent, error) {
	g.created = append(g.created, amount)
	return &Intent{ID: "pi_new", ClientSecret: "pi_new_secret", Amount: amount, Metadata: md}, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, id string) (*Intent, error) {
	intent, ok := g.intents[id]
	if !ok {
		return nil, fmt.Errorf("get payment intent: %w", core.ErrNotFound)
	}
	return intent, nil
}

type inlineTx struct {
	rolledBack bool
}

func (t *inlineTx) InTx(_ context.Context, fn func(tx core.DBTX) error) error {
	err := fn(nil)
	t.rolledBack = err != nil
	return err
}

type recordingCache struct {
	emails []string
}

func (c *recordingCache) Invalidate(_ context.Context, emails ...string) {
	c.emails = append(c.emails, emails...)
}

type recordingPublisher struct {
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.types = append(p.types, eventType)
	return nil
}

type fixture struct {
	svc       *Service
	repo      *mockRepository
	gateway   *fakeGateway
	tx        *inlineTx
	cache     *recordingCache
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &mockRepository{},
		gateway:   &fakeGateway{intents: map[string]*Intent{}},
		tx:        &inlineTx{},
		cache:     &recordingCache{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewService(
		f.tx,
		f.repo,
		func(core.DBTX) Repository { return f.repo },
		f.gateway,
		f.cache,
		f.publisher,
		nil,
	)
	return f
}

func regular() plan.Package {
	pkg, _ := plan.ByTitle("Regular")
	return pkg
}

func TestCreateIntentChargesPackagePrice(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateIntent(context.Background(), "HR@acme.io", IntentRequest{Package: "premium"})
	require.NoError(t, err)
	assert.Equal(t, "pi_new_secret", resp.ClientSecret)
	assert.Equal(t, []int64{1500}, f.gateway.created)
}

func TestCreateIntentUnknownPackage(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateIntent(context.Background(), "hr@acme.io", IntentRequest{Package: "Gold"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, f.gateway.created)
}

func TestConfirmGrantsSeats(t *testing.T) {
	f := newFixture()
	f.gateway.intents["pi_1"] = &Intent{
		ID: "pi_1", Status: IntentSucceeded, Amount: 800,
		Metadata: map[string]string{"hr_email": "hr@acme.io"},
	}
	f.repo.On("LockHR", mock.Anything, "hr@acme.io").Return(&employee.Employee{ID: "hr-1"}, nil)
	f.repo.On("Insert", mock.Anything, mock.MatchedBy(func(p *Payment) bool {
		return p.TransactionID == "pi_1" &&
			p.Amount.Equal(decimal.NewFromInt(8)) &&
			p.PackageMembers == 10
	})).Return(nil)
	f.repo.On("ApplyPackage", mock.Anything, "hr-1", regular()).Return(12, nil)

	resp, err := f.svc.Confirm(context.Background(), "hr@acme.io",
		ConfirmRequest{TransactionID: "pi_1", Package: "Regular"})
	require.NoError(t, err)
	assert.Equal(t, employee.PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, 12, resp.MemberLimit)
	assert.Equal(t, []string{"hr@acme.io"}, f.cache.emails)
	assert.Equal(t, []string{events.PaymentSucceeded}, f.publisher.types)
}

func TestConfirmRejectsUnverifiedCharges(t *testing.T) {
	tests := []struct {
		name    string
		intent  *Intent
		wantErr error
	}{
		{
			name:    "not succeeded",
			intent:  &Intent{ID: "pi_1", Status: "processing", Amount: 800},
			wantErr: ErrNotCompleted,
		},
		{
			name:    "wrong amount",
			intent:  &Intent{ID: "pi_1", Status: IntentSucceeded, Amount: 500},
			wantErr: ErrAmountMismatch,
		},
		{
			name: "someone else's charge",
			intent: &Intent{
				ID: "pi_1", Status: IntentSucceeded, Amount: 800,
				Metadata: map[string]string{"hr_email": "boss@other.io"},
			},
			wantErr: core.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.gateway.intents["pi_1"] = tt.intent

			_, err := f.svc.Confirm(context.Background(), "hr@acme.io",
				ConfirmRequest{TransactionID: "pi_1", Package: "Regular"})
			assert.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "LockHR", mock.Anything, mock.Anything)
			assert.Empty(t, f.publisher.types)
		})
	}
}

func TestConfirmUnknownTransaction(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), "hr@acme.io",
		ConfirmRequest{TransactionID: "pi_nope", Package: "Base"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestConfirmTwiceIsRejected(t *testing.T) {
	f := newFixture()
	f.gateway.intents["pi_1"] = &Intent{ID: "pi_1", Status: IntentSucceeded, Amount: 500}
	f.repo.On("LockHR", mock.Anything, "hr@acme.io").Return(&employee.Employee{ID: "hr-1"}, nil)
	f.repo.On("Insert", mock.Anything, mock.Anything).
		Return(fmt.Errorf("insert payment: %w", core.ErrDuplicateKey))

	_, err := f.svc.Confirm(context.Background(), "hr@acme.io",
		ConfirmRequest{TransactionID: "pi_1", Package: "Base"})
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	assert.True(t, f.tx.rolledBack)
	f.repo.AssertNotCalled(t, "ApplyPackage", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.cache.emails)
}
