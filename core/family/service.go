package family

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/billing"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

var (
	ErrNotFound = core.NewNotFoundError("Family")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

// Repository scopes every family to the organization (owner user id) it belongs to.
type Repository interface {
	// CreateFamily stores the family account and the family atomically.
	CreateFamily(ctx context.Context, usr user.User, fam Family) (Family, error)
	QueryFamilies(ctx context.Context, orgID string, filter QueryFilter, pq core.PageQuery) ([]Family, int64, error)
	// GetFamily preloads the account & its address.
	GetFamily(ctx context.Context, orgID string, id int) (Family, error)
	// SaveFamily stores fam, its loaded account & address, and contact when not nil, atomically.
	SaveFamily(ctx context.Context, fam Family, contact *user.ContactInfo) error
	DeleteFamily(ctx context.Context, orgID string, id int) error
	// GetEmergencyContact returns nil when the user has none.
	GetEmergencyContact(ctx context.Context, userID string) (*user.ContactInfo, error)
	GetBusinessName(ctx context.Context, orgID string) (string, error)
	QueryFamilyStudents(ctx context.Context, familyID int) ([]student.Student, error)
	// QueryEnrolledClasses maps student ids to the classes & drop-in classes of their live bookings.
	QueryEnrolledClasses(ctx context.Context, studentIDs []int) (map[int][]EnrolledClass, error)
	QueryOrders(ctx context.Context, userID string) ([]billing.Order, error)
	CreateStudent(ctx context.Context, s student.Student) (student.Student, error)
}

type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Service struct {
	repo   Repository
	emails EmailChecker
}

func NewService(repo Repository, emails EmailChecker) *Service {
	return &Service{repo: repo, emails: emails}
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

// Create opens a family account for the organization orgID.
func (svc *Service) Create(ctx context.Context, orgID string, nf NewFamily) (Created, error) {
	nf.Clean()
	if err := svc.checkEmail(ctx, nf.Email); err != nil {
		return Created{}, err
	}

	usr := user.User{
		ID:    uuid.New().String(),
		Email: nf.Email,
		Role:  user.RoleFamily,
	}
	usr.Name.SetValid(core.CleanString(nf.FirstName + " " + nf.LastName))
	if nf.PhoneNumber != nil && *nf.PhoneNumber != "" {
		usr.PhoneNo.SetValid(core.CleanString(deref(nf.PhoneCountryCode) + " " + *nf.PhoneNumber))
	}
	if nf.SendPortalInvitation != nil {
		usr.SendInvitationOnSignup = *nf.SendPortalInvitation
	}
	if err := usr.SetPassword(nf.Password); err != nil {
		return Created{}, errors.Wrap(err, "hashing password")
	}

	fam := Family{
		OrganizationID:            orgID,
		UserID:                    usr.ID,
		FamilyName:                nf.LastName + " Family",
		PrimaryParentFirstName:    nf.FirstName,
		PrimaryParentLastName:     nf.LastName,
		PrimaryParentEmail:        nf.Email,
		PrimaryParentPhoneCountry: null.StringFromPtr(nf.PhoneCountryCode),
		PrimaryParentPhoneNumber:  null.StringFromPtr(nf.PhoneNumber),
		SendPortalInvitation:      usr.SendInvitationOnSignup,
	}
	if nf.FamilyName != nil && core.CleanString(*nf.FamilyName) != "" {
		fam.FamilyName = core.CleanString(*nf.FamilyName)
	}

	fam, err := svc.repo.CreateFamily(ctx, usr, fam)
	if err != nil {
		return Created{}, errors.Wrap(err, "creating family")
	}
	if fam.Students == nil {
		fam.Students = []student.Student{}
	}
	return Created{Family: fam, User: usr}, nil
}

func (svc *Service) Query(ctx context.Context, orgID string, filter QueryFilter, pq core.PageQuery) (Page, error) {
	filter.Clean()
	pq.Clean()
	fams, total, err := svc.repo.QueryFamilies(ctx, orgID, filter, pq)
	if err != nil {
		return Page{}, err
	}
	data := make([]ListItem, 0, len(fams))
	for _, f := range fams {
		data = append(data, ListItem{
			ID:         f.ID,
			FamilyName: f.DisplayName(),
			Email:      f.PrimaryParentEmail,
			Phone:      f.Phone(),
			Students:   len(f.Students),
			Status:     f.StatusOrDefault(),
			CreatedAt:  f.CreatedAt,
		})
	}
	return Page{Data: data, Pagination: core.NewPagination(pq, total)}, nil
}

func (svc *Service) Get(ctx context.Context, orgID string, id int) (Detail, error) {
	fam, err := svc.repo.GetFamily(ctx, orgID, id)
	if err != nil {
		return Detail{}, err
	}
	return svc.detail(ctx, fam)
}

func (svc *Service) detail(ctx context.Context, fam Family) (Detail, error) {
	bizName, err := svc.repo.GetBusinessName(ctx, fam.OrganizationID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "finding linked business")
	}
	if bizName == "" {
		bizName = noLinkedBusiness
	}
	contact, err := svc.repo.GetEmergencyContact(ctx, fam.UserID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "finding emergency contact")
	}

	d := Detail{
		ID:                        fam.ID,
		FamilyName:                fam.FamilyName,
		PrimaryParentFirstName:    fam.PrimaryParentFirstName,
		PrimaryParentLastName:     fam.PrimaryParentLastName,
		PrimaryParentEmail:        fam.PrimaryParentEmail,
		PrimaryParentPhoneCountry: fam.PrimaryParentPhoneCountry,
		PrimaryParentPhoneNumber:  fam.PrimaryParentPhoneNumber,
		Status:                    fam.Status,
		Notes:                     fam.Notes,
		MemberSince:               fam.CreatedAt,
		ContactInfo: ContactInfo{
			Email:          fam.PrimaryParentEmail,
			Phone:          fam.Phone(),
			LinkedBusiness: bizName,
		},
	}
	if fam.User != nil {
		d.Address = fam.User.Address
		d.User = Account{ID: fam.User.ID, Email: fam.User.Email, Name: fam.User.Name, PhoneNo: fam.User.PhoneNo}
	}
	if contact != nil {
		name := "N/A"
		switch {
		case contact.Relation.String != "":
			name = contact.Relation.String
		case contact.Email.String != "":
			name = contact.Email.String
		}
		d.EmergencyContact = &EmergencyContact{
			Name:     name,
			Relation: contact.Relation,
			Phone:    contact.PhoneNo,
			Email:    contact.Email,
		}
	}
	return d, nil
}

func (svc *Service) Update(ctx context.Context, orgID string, id int, uf UpdateFamily) (Detail, error) {
	fam, err := svc.repo.GetFamily(ctx, orgID, id)
	if err != nil {
		return Detail{}, err
	}
	if fam.User == nil {
		return Detail{}, errors.New("family account not loaded")
	}
	usr := fam.User

	if uf.Email != nil {
		email := core.CleanString(*uf.Email, true /* lower */)
		if email != usr.Email {
			if err := svc.checkEmail(ctx, email); err != nil {
				return Detail{}, err
			}
		}
		usr.Email = email
		fam.PrimaryParentEmail = email
	}
	if uf.FirstName != nil {
		fam.PrimaryParentFirstName = core.CleanString(*uf.FirstName)
	}
	if uf.LastName != nil {
		fam.PrimaryParentLastName = core.CleanString(*uf.LastName)
	}
	if uf.FirstName != nil || uf.LastName != nil {
		usr.Name.SetValid(core.CleanString(fam.PrimaryParentFirstName + " " + fam.PrimaryParentLastName))
	}
	if uf.PhoneCountryCode != nil && *uf.PhoneCountryCode != "" {
		fam.PrimaryParentPhoneCountry.SetValid(*uf.PhoneCountryCode)
	}
	if uf.PhoneNumber != nil && *uf.PhoneNumber != "" {
		fam.PrimaryParentPhoneNumber.SetValid(*uf.PhoneNumber)
		usr.PhoneNo.SetValid(core.CleanString(deref(uf.PhoneCountryCode) + " " + *uf.PhoneNumber))
	}
	if uf.FamilyName != nil && *uf.FamilyName != "" {
		fam.FamilyName = core.CleanString(*uf.FamilyName)
	}
	if uf.Status != nil {
		fam.Status.SetValid(*uf.Status)
	}
	if uf.Notes != nil {
		fam.Notes.SetValid(*uf.Notes)
	}
	if uf.Address != nil {
		if usr.Address == nil {
			usr.Address = new(user.Address)
		}
		uf.Address.apply(usr.Address)
	}

	var contact *user.ContactInfo
	if uf.EmergencyContact != nil {
		contact, err = svc.repo.GetEmergencyContact(ctx, fam.UserID)
		if err != nil {
			return Detail{}, errors.Wrap(err, "finding emergency contact")
		}
		if contact == nil {
			contact = &user.ContactInfo{UserID: fam.UserID}
		}
		uf.EmergencyContact.apply(contact)
	}

	if err := svc.repo.SaveFamily(ctx, fam, contact); err != nil {
		return Detail{}, errors.Wrap(err, "saving family")
	}
	return svc.Get(ctx, orgID, id)
}

func (svc *Service) Delete(ctx context.Context, orgID string, id int) error {
	return svc.repo.DeleteFamily(ctx, orgID, id)
}

func (svc *Service) SetStatus(ctx context.Context, orgID string, id int, status string) (Family, error) {
	fam, err := svc.repo.GetFamily(ctx, orgID, id)
	if err != nil {
		return Family{}, err
	}
	fam.Status.SetValid(core.CleanString(status))
	fam.User = nil // leave the account untouched
	if err := svc.repo.SaveFamily(ctx, fam, nil); err != nil {
		return Family{}, errors.Wrap(err, "saving family status")
	}
	return fam, nil
}

// Children lists the students of a family with the classes they are booked in.
func (svc *Service) Children(ctx context.Context, orgID string, id int) ([]Child, error) {
	fam, err := svc.repo.GetFamily(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	students, err := svc.repo.QueryFamilyStudents(ctx, fam.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying family students")
	}
	ids := make([]int, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	classes, err := svc.repo.QueryEnrolledClasses(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrolled classes")
	}

	now := nowFunc()
	children := make([]Child, 0, len(students))
	for _, s := range students {
		enrolled := classes[s.ID]
		if enrolled == nil {
			enrolled = []EnrolledClass{}
		}
		status := ChildNotEnrolled
		if len(enrolled) > 0 {
			status = ChildEnrolled
		}
		children = append(children, Child{
			ID:              s.ID,
			FirstName:       s.FirstName,
			LastName:        s.LastName,
			DateOfBirth:     s.DateOfBirth,
			Age:             s.Age(now),
			OverallStatus:   status,
			EnrolledClasses: enrolled,
		})
	}
	return children, nil
}

// Payments is the invoice statement of the family account.
func (svc *Service) Payments(ctx context.Context, orgID string, id int) (billing.Statement, error) {
	fam, err := svc.repo.GetFamily(ctx, orgID, id)
	if err != nil {
		return billing.Statement{}, err
	}
	orders, err := svc.repo.QueryOrders(ctx, fam.UserID)
	if err != nil {
		return billing.Statement{}, errors.Wrap(err, "querying orders")
	}
	return billing.NewStatement(orders), nil
}

func (svc *Service) AddStudent(ctx context.Context, orgID string, id int, ns student.NewStudent) (student.Student, error) {
	fam, err := svc.repo.GetFamily(ctx, orgID, id)
	if err != nil {
		return student.Student{}, err
	}
	s, err := svc.repo.CreateStudent(ctx, ns.Student(fam.ID))
	return s, errors.Wrap(err, "creating student")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
