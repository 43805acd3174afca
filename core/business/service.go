package business

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

var (
	ErrNotFound = core.NewNotFoundError("Business")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type Repository interface {
	// QueryBusinesses matches search against the company name, the owner email & phone.
	QueryBusinesses(ctx context.Context, search string, pq core.PageQuery) ([]organization.Organization, int64, error)
	// GetBusiness preloads the owner & the owner address.
	GetBusiness(ctx context.Context, id int) (organization.Organization, error)
	// CreateBusiness stores the owner (with its address), org and comm when not nil, atomically.
	CreateBusiness(ctx context.Context, owner user.User, org organization.Organization, comm *commission.Commission) (organization.Organization, error)
	// SaveBusiness stores org and its loaded owner atomically.
	SaveBusiness(ctx context.Context, org organization.Organization) error
	// QueryStudents lists the students of the families of ownerID, with their family.
	QueryStudents(ctx context.Context, ownerID string, pq core.PageQuery) ([]student.Student, int64, error)
}

type StatsRepository interface {
	// BusinessStatistics computes everything but the earned commission.
	BusinessStatistics(ctx context.Context, ownerID string, now time.Time) (Statistics, error)
}

type CommissionService interface {
	Resolve(ctx context.Context, businessID int, country, currency string) (commission.Resolved, error)
	ReplaceForBusiness(ctx context.Context, businessID int, typ string, value *decimal.Decimal, country, currency string) (commission.Commission, error)
}

type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Service struct {
	repo        Repository
	stats       StatsRepository
	commissions CommissionService
	emails      EmailChecker
}

func NewService(repo Repository, stats StatsRepository, commissions CommissionService, emails EmailChecker) *Service {
	return &Service{repo: repo, stats: stats, commissions: commissions, emails: emails}
}

func (svc *Service) checkEmail(ctx context.Context, email string) error {
	exists, err := svc.emails.EmailExists(ctx, email)
	if err != nil {
		return errors.Wrap(err, "checking email")
	}
	if exists {
		return user.ErrEmailAlreadyUsed
	}
	return nil
}

func (svc *Service) Query(ctx context.Context, search string, pq core.PageQuery) (Page, error) {
	pq.Clean()
	orgs, total, err := svc.repo.QueryBusinesses(ctx, core.CleanString(search), pq)
	if err != nil {
		return Page{}, err
	}
	data := make([]ListItem, 0, len(orgs))
	for _, org := range orgs {
		data = append(data, newListItem(org))
	}
	return Page{Data: data, Pagination: core.NewPagination(pq, total)}, nil
}

// Get returns the business with its statistics and the commission it pays.
func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	org, err := svc.repo.GetBusiness(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	owner := org.User
	if owner == nil {
		return Detail{}, errors.New("business owner not loaded")
	}

	stats, err := svc.stats.BusinessStatistics(ctx, org.UserID, nowFunc())
	if err != nil {
		return Detail{}, errors.Wrap(err, "computing statistics")
	}
	stats.TotalRevenue = core.RoundMoney(stats.TotalRevenue)
	stats.EarnedCommission = decimal.Zero

	var summary *CommissionSummary
	res, err := svc.commissions.Resolve(ctx, org.ID, "", "")
	switch {
	case err == nil:
		isGlobal := res.IsGlobal
		summary = &CommissionSummary{
			CommissionType:  res.CommissionType,
			CommissionValue: res.CommissionValue,
			IsGlobal:        &isGlobal,
		}
		stats.EarnedCommission = commission.Owed(stats.TotalRevenue, res.Commission)
	case errors.Cause(err) != commission.ErrNotFound:
		return Detail{}, errors.Wrap(err, "resolving commission")
	}

	var ownerAddr null.String
	if owner.Address != nil {
		ownerAddr.SetValid(owner.Address.String())
	}
	address := org.Address
	if !address.Valid {
		address = ownerAddr
	}
	contact := ContactInfo{
		Email:   contactEmail(org),
		Phone:   contactPhone(org),
		Address: address,
		Website: org.Website,
	}

	return Detail{
		ID:         org.ID,
		SchoolName: org.CompanyName,
		Email:      contact.Email,
		Phone:      contact.Phone,
		Address:    address,
		Website:    org.Website,
		Status:     status(owner.Banned),
		Registered: org.CreatedAt,
		UserID:     org.UserID,
		Owner: Owner{
			Name:    owner.Name,
			Email:   owner.Email,
			Phone:   owner.PhoneNo,
			Address: ownerAddr,
		},
		Statistics:  stats,
		ContactInfo: contact,
		Commission:  summary,
	}, nil
}

// Create registers a business: its BUSINESS owner account, the organization and, when both the
// type and value are given, its own commission. Without one the business pays the global commission.
func (svc *Service) Create(ctx context.Context, nb NewBusiness) (Created, error) {
	nb.Clean()
	if err := svc.checkEmail(ctx, nb.OwnerEmail); err != nil {
		return Created{}, err
	}
	now := nowFunc()
	active := nb.Status == nil || *nb.Status

	owner := user.User{
		ID:     uuid.New().String(),
		Email:  nb.OwnerEmail,
		Role:   user.RoleBusiness,
		Banned: !active,
	}
	owner.Name.SetValid(nb.OwnerName)
	owner.PhoneNo.SetValid(nb.OwnerPhone)
	if nb.OwnerAddress != nil && core.CleanString(*nb.OwnerAddress) != "" {
		addr := user.ParseAddress(*nb.OwnerAddress)
		owner.Address = &addr
	}

	org := organization.New(owner.ID, nb.SchoolName, "Education", now)
	org.Address = null.StringFromPtr(nb.Address)
	org.Website = null.StringFromPtr(nb.Website)
	org.ContactEmail.SetValid(nb.Email)
	org.ContactPhone.SetValid(nb.Phone)

	var comm *commission.Commission
	var summary *CommissionSummary
	if nb.CommissionType != "" && nb.CommissionValue != nil {
		comm = &commission.Commission{
			EffectiveFrom:   now,
			Country:         commission.DefaultCountry,
			Currency:        commission.DefaultCurrency,
			CommissionType:  nb.CommissionType,
			CommissionValue: *nb.CommissionValue,
			AppliesTo:       commission.AppliesToAll,
			IsActive:        true,
		}
		summary = &CommissionSummary{CommissionType: comm.CommissionType, CommissionValue: comm.CommissionValue}
	}

	org, err := svc.repo.CreateBusiness(ctx, owner, org, comm)
	if err != nil {
		return Created{}, errors.Wrap(err, "creating business")
	}
	org.User = &owner

	return Created{
		ID:         org.ID,
		SchoolName: org.CompanyName,
		Email:      contactEmail(org),
		Phone:      contactPhone(org),
		Status:     status(owner.Banned),
		Address:    org.Address,
		Owner: Owner{
			Name:    owner.Name,
			Email:   owner.Email,
			Phone:   owner.PhoneNo,
			Address: null.StringFromPtr(nb.OwnerAddress),
		},
		Commission: summary,
	}, nil
}

// Update changes the contact details of the business. Email & phone are also set on the owner.
func (svc *Service) Update(ctx context.Context, id int, ub UpdateBusiness) (Updated, error) {
	org, err := svc.repo.GetBusiness(ctx, id)
	if err != nil {
		return Updated{}, err
	}
	owner := org.User
	if owner == nil {
		return Updated{}, errors.New("business owner not loaded")
	}

	if ub.Email != nil {
		email := core.CleanString(*ub.Email, true /* lower */)
		if email != owner.Email {
			if err := svc.checkEmail(ctx, email); err != nil {
				return Updated{}, err
			}
		}
		owner.Email = email
		org.ContactEmail.SetValid(email)
	}
	if ub.Phone != nil {
		phone := core.CleanString(*ub.Phone)
		owner.PhoneNo.SetValid(phone)
		org.ContactPhone.SetValid(phone)
	}
	if ub.Status != nil {
		owner.Banned = !*ub.Status
	}
	if ub.SchoolName != nil {
		org.CompanyName = core.CleanString(*ub.SchoolName)
	}
	if ub.Address != nil {
		org.Address.SetValid(core.CleanString(*ub.Address))
	}
	if ub.Website != nil {
		org.Website.SetValid(core.CleanString(*ub.Website))
	}

	if err := svc.repo.SaveBusiness(ctx, org); err != nil {
		return Updated{}, errors.Wrap(err, "saving business")
	}
	return Updated{
		ID:         org.ID,
		SchoolName: org.CompanyName,
		Email:      contactEmail(org),
		Phone:      contactPhone(org),
		Status:     status(owner.Banned),
	}, nil
}

// UpdateCommission replaces every active commission of the business with a new one.
func (svc *Service) UpdateCommission(ctx context.Context, id int, uc UpdateCommission) (CommissionSummary, error) {
	if _, err := svc.repo.GetBusiness(ctx, id); err != nil {
		return CommissionSummary{}, err
	}
	c, err := svc.commissions.ReplaceForBusiness(ctx, id, uc.CommissionType, uc.CommissionValue,
		core.CleanString(uc.Country), core.CleanString(uc.Currency))
	if err != nil {
		return CommissionSummary{}, errors.Wrap(err, "replacing commission")
	}
	return CommissionSummary{CommissionType: c.CommissionType, CommissionValue: c.CommissionValue}, nil
}

func (svc *Service) Students(ctx context.Context, id int, pq core.PageQuery) (StudentPage, error) {
	org, err := svc.repo.GetBusiness(ctx, id)
	if err != nil {
		return StudentPage{}, err
	}
	pq.Clean()
	students, total, err := svc.repo.QueryStudents(ctx, org.UserID, pq)
	if err != nil {
		return StudentPage{}, errors.Wrap(err, "querying students")
	}
	data := make([]StudentItem, 0, len(students))
	for _, s := range students {
		item := StudentItem{ID: s.ID, StudentName: s.FullName(), Status: StatusActive}
		if s.Family != nil {
			item.Email = s.Family.PrimaryParentEmail
			item.Phone = s.Family.PrimaryParentPhoneNumber.String
		}
		data = append(data, item)
	}
	return StudentPage{Data: data, Pagination: core.NewPagination(pq, total)}, nil
}

// SetStatus activates or deactivates (bans) the business owner.
func (svc *Service) SetStatus(ctx context.Context, id int, active bool) (StatusResult, error) {
	org, err := svc.repo.GetBusiness(ctx, id)
	if err != nil {
		return StatusResult{}, err
	}
	if org.User == nil {
		return StatusResult{}, errors.New("business owner not loaded")
	}
	org.User.Banned = !active
	if err := svc.repo.SaveBusiness(ctx, org); err != nil {
		return StatusResult{}, errors.Wrap(err, "saving business status")
	}
	return StatusResult{ID: id, Status: status(!active)}, nil
}

func contactEmail(org organization.Organization) string {
	if org.ContactEmail.Valid && org.ContactEmail.String != "" {
		return org.ContactEmail.String
	}
	if org.User != nil {
		return org.User.Email
	}
	return ""
}

func contactPhone(org organization.Organization) string {
	if org.ContactPhone.Valid && org.ContactPhone.String != "" {
		return org.ContactPhone.String
	}
	if org.User != nil {
		return org.User.PhoneNo.String
	}
	return ""
}
