package customfield

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Custom field")

// CustomField is an extra question asked on registration forms.
type CustomField struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	AppliesTo  string    `json:"appliesTo" gorm:"not null"`
	Question   string    `json:"question" gorm:"not null"`
	AnswerType string    `json:"answerType" gorm:"not null"`
	Options    null.JSON `json:"options" gorm:"type:jsonb"`
	IsRequired bool      `json:"isRequired" gorm:"not null;default:false"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type NewCustomField struct {
	AppliesTo  string          `json:"appliesTo" validate:"required"`
	Question   string          `json:"question" validate:"required"`
	AnswerType string          `json:"answerType" validate:"required"`
	Options    json.RawMessage `json:"options"`
	IsRequired *bool           `json:"isRequired"`
	IsActive   *bool           `json:"isActive"`
}

func (nf NewCustomField) CustomField(userID string) CustomField {
	f := CustomField{
		UserID:     userID,
		AppliesTo:  nf.AppliesTo,
		Question:   core.CleanString(nf.Question),
		AnswerType: nf.AnswerType,
		IsActive:   true,
	}
	if len(nf.Options) > 0 && string(nf.Options) != "null" {
		f.Options = null.JSONFrom(nf.Options)
	}
	if nf.IsRequired != nil {
		f.IsRequired = *nf.IsRequired
	}
	if nf.IsActive != nil {
		f.IsActive = *nf.IsActive
	}
	return f
}

type UpdateCustomField struct {
	AppliesTo  *string                        `json:"appliesTo" validate:"omitempty,min=1"`
	Question   *string                        `json:"question" validate:"omitempty,min=1"`
	AnswerType *string                        `json:"answerType" validate:"omitempty,min=1"`
	Options    core.Optional[json.RawMessage] `json:"options"`
	IsRequired *bool                          `json:"isRequired"`
	IsActive   *bool                          `json:"isActive"`
}

func (u UpdateCustomField) Apply(f *CustomField) {
	if u.AppliesTo != nil {
		f.AppliesTo = *u.AppliesTo
	}
	if u.Question != nil {
		f.Question = core.CleanString(*u.Question)
	}
	if u.AnswerType != nil {
		f.AnswerType = *u.AnswerType
	}
	if u.Options.Set {
		f.Options = core.NullJSON(u.Options)
	}
	if u.IsRequired != nil {
		f.IsRequired = *u.IsRequired
	}
	if u.IsActive != nil {
		f.IsActive = *u.IsActive
	}
}

type Repository = core.Store[CustomField]

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nf NewCustomField) (CustomField, error) {
	f, err := svc.repo.Create(ctx, nf.CustomField(userID))
	return f, errors.Wrap(err, "creating custom field")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]CustomField, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID string, id int) (CustomField, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, u UpdateCustomField) (CustomField, error) {
	f, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return CustomField{}, err
	}
	u.Apply(&f)
	f, err = svc.repo.Update(ctx, f)
	return f, errors.Wrap(err, "updating custom field")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
