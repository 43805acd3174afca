package commission

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
)

var (
	ErrNotFound         = core.NewNotFoundError("Commission")
	ErrBusinessNotFound = core.NewNotFoundError("Business")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type Repository interface {
	// ReplaceCommission deactivates the active rows of scope and inserts c, in one transaction.
	ReplaceCommission(ctx context.Context, scope Scope, c Commission) (Commission, error)
	QueryCommissions(ctx context.Context, filter QueryFilter, pq core.PageQuery) ([]Commission, int64, error)
	GetCommission(ctx context.Context, id int) (Commission, error)
	UpdateCommission(ctx context.Context, c Commission) (Commission, error)
	DeleteCommission(ctx context.Context, id int) error
	// GetActiveCommission returns the active row of scope with the latest effectiveFrom.
	// A nil scope.BusinessID selects global rows.
	GetActiveCommission(ctx context.Context, scope Scope) (Commission, error)
	GetBusiness(ctx context.Context, id int) (organization.Organization, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (nc NewCommission) commission(businessID *int) Commission {
	c := Commission{
		BusinessID:     businessID,
		EffectiveFrom:  nowFunc(),
		Country:        nc.Country,
		Currency:       nc.Currency,
		CommissionType: nc.CommissionType,
		TierConfig:     nc.TierConfig,
		AppliesTo:      nc.AppliesTo,
		IsActive:       true,
	}
	if nc.CommissionValue != nil {
		c.CommissionValue = *nc.CommissionValue
	}
	if nc.EffectiveFrom != nil {
		c.EffectiveFrom = core.MustParseDate(*nc.EffectiveFrom)
	}
	if nc.MinTransactionAmt != nil {
		c.MinTransactionAmt = decimal.NewNullDecimal(*nc.MinTransactionAmt)
	}
	// a ceiling of 0 means "no ceiling"
	if nc.MaxTransactionAmt != nil && nc.MaxTransactionAmt.IsPositive() {
		c.MaxTransactionAmt = decimal.NewNullDecimal(*nc.MaxTransactionAmt)
	}
	return c
}

// CreateGlobal supersedes the active global commission of the same country & currency.
func (svc *Service) CreateGlobal(ctx context.Context, nc NewCommission) (Detail, error) {
	nc.Clean()
	c, err := svc.repo.ReplaceCommission(ctx, Scope{Country: nc.Country, Currency: nc.Currency}, nc.commission(nil))
	if err != nil {
		return Detail{}, errors.Wrap(err, "replacing global commission")
	}
	return NewDetail(c), nil
}

// CreateForBusiness supersedes the active commission of the business for the same country & currency.
func (svc *Service) CreateForBusiness(ctx context.Context, nc NewBusinessCommission) (Detail, error) {
	nc.Clean()
	biz, err := svc.repo.GetBusiness(ctx, nc.BusinessID)
	if err != nil {
		return Detail{}, err
	}
	scope := Scope{BusinessID: &biz.ID, Country: nc.Country, Currency: nc.Currency}
	c, err := svc.repo.ReplaceCommission(ctx, scope, nc.commission(&biz.ID))
	if err != nil {
		return Detail{}, errors.Wrap(err, "replacing business commission")
	}
	c.Business = &biz
	return NewDetail(c), nil
}

// ReplaceForBusiness deactivates every active commission of the business, whatever the
// country, then activates a new one. A nil value is stored as 0.
func (svc *Service) ReplaceForBusiness(ctx context.Context, businessID int, typ string, value *decimal.Decimal, country, currency string) (Commission, error) {
	nc := NewCommission{CommissionType: typ, CommissionValue: value, Country: country, Currency: currency}
	nc.Clean()
	return svc.repo.ReplaceCommission(ctx, Scope{BusinessID: &businessID}, nc.commission(&businessID))
}

// Query lists global commissions first, then by effectiveFrom descending.
func (svc *Service) Query(ctx context.Context, filter QueryFilter, pq core.PageQuery) (Page, error) {
	pq.Clean()
	comms, total, err := svc.repo.QueryCommissions(ctx, filter, pq)
	if err != nil {
		return Page{}, err
	}
	data := make([]Detail, 0, len(comms))
	for _, c := range comms {
		data = append(data, NewDetail(c))
	}
	return Page{Data: data, Pagination: core.NewPagination(pq, total)}, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	c, err := svc.repo.GetCommission(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return NewDetail(c), nil
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCommission) (Detail, error) {
	c, err := svc.repo.GetCommission(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	uc.Apply(&c)
	c, err = svc.repo.UpdateCommission(ctx, c)
	if err != nil {
		return Detail{}, errors.Wrap(err, "updating commission")
	}
	return NewDetail(c), nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteCommission(ctx, id)
}

// ResolveForBusiness is Resolve for a business that must exist.
func (svc *Service) ResolveForBusiness(ctx context.Context, businessID int, country, currency string) (Resolved, error) {
	if _, err := svc.repo.GetBusiness(ctx, businessID); err != nil {
		return Resolved{}, err
	}
	return svc.Resolve(ctx, businessID, country, currency)
}

// Resolve returns the active commission of the business for country & currency, falling back to
// the active global one. An empty country (or currency) matches any business row and the
// default for the global fallback. It returns ErrNotFound when neither exists.
func (svc *Service) Resolve(ctx context.Context, businessID int, country, currency string) (Resolved, error) {
	c, err := svc.repo.GetActiveCommission(ctx, Scope{BusinessID: &businessID, Country: country, Currency: currency})
	if err == nil {
		return Resolved{Detail: NewDetail(c)}, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return Resolved{}, errors.Wrap(err, "finding business commission")
	}

	if country == "" {
		country = DefaultCountry
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	c, err = svc.repo.GetActiveCommission(ctx, Scope{Country: country, Currency: currency})
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Resolved{}, ErrNotFound
		}
		return Resolved{}, errors.Wrap(err, "finding global commission")
	}
	return Resolved{Detail: NewDetail(c), IsGlobal: true}, nil
}
