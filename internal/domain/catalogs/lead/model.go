// Package lead provides the Lead catalog.
// Leads are prospective customers moving through the CRM pipeline; a won
// lead becomes the buyer on sale documents.
package lead

import (
	"context"
	"regexp"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Status defines the pipeline stage of a lead.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
)

// allowedTransitions describes the forward pipeline. Lost is reachable from
// any non-terminal stage; reopening a terminal lead goes back to contacted.
var allowedTransitions = map[Status][]Status{
	StatusNew:       {StatusContacted, StatusQualified, StatusLost},
	StatusContacted: {StatusQualified, StatusLost},
	StatusQualified: {StatusWon, StatusLost},
	StatusWon:       {StatusContacted},
	StatusLost:      {StatusContacted},
}

// Source defines where the lead came from.
type Source string

const (
	SourceWeb      Source = "web"
	SourceReferral Source = "referral"
	SourcePhone    Source = "phone"
	SourceWalkIn   Source = "walk_in"
	SourceSocial   Source = "social"
	SourceOther    Source = "other"
)

// Lead represents a prospective customer.
type Lead struct {
	entity.Catalog

	// Status is the current pipeline stage
	Status Status `db:"status" json:"status"`

	// Source defines the acquisition channel
	Source Source `db:"source" json:"source"`

	// Company is the lead's company name (optional for individuals)
	Company *string `db:"company" json:"company,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// AssignedTo is the sales agent responsible for the lead
	AssignedTo *id.ID `db:"assigned_to" json:"assignedTo,omitempty"`

	// Notes is a free-form note
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewLead creates a new Lead with required fields.
func NewLead(code, name string, source Source) *Lead {
	return &Lead{
		Catalog: entity.NewCatalog(code, name),
		Status:  StatusNew,
		Source:  source,
	}
}

// Validate implements entity.Validatable interface.
func (l *Lead) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidStatus(l.Status) {
		return apperror.NewValidation("invalid lead status").
			WithDetail("field", "status").
			WithDetail("value", string(l.Status))
	}

	if !isValidSource(l.Source) {
		return apperror.NewValidation("invalid lead source").
			WithDetail("field", "source").
			WithDetail("value", string(l.Source))
	}

	if l.Email != nil && *l.Email != "" && !emailRE.MatchString(*l.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// CanTransitionTo reports whether the pipeline allows moving to next.
func (l *Lead) CanTransitionTo(next Status) bool {
	for _, s := range allowedTransitions[l.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the lead to the next pipeline stage.
func (l *Lead) TransitionTo(next Status) error {
	if !isValidStatus(next) {
		return apperror.NewValidation("invalid lead status").
			WithDetail("field", "status").
			WithDetail("value", string(next))
	}
	if !l.CanTransitionTo(next) {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"lead status transition not allowed",
		).WithDetail("from", string(l.Status)).WithDetail("to", string(next))
	}
	l.Status = next
	return nil
}

// IsOpen returns true if the lead is still in the pipeline.
func (l *Lead) IsOpen() bool {
	return l.Status != StatusWon && l.Status != StatusLost
}

// --- Validation Helpers ---

func isValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusWon, StatusLost:
		return true
	}
	return false
}

func isValidSource(s Source) bool {
	switch s {
	case SourceWeb, SourceReferral, SourcePhone, SourceWalkIn, SourceSocial, SourceOther:
		return true
	}
	return false
}
