package dto

import (
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/lead"
)

// --- Request DTOs ---

// CreateLeadRequest is the request body for creating a lead.
type CreateLeadRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Source     lead.Source       `json:"source" binding:"required"`
	Company    *string           `json:"company"`
	Phone      *string           `json:"phone"`
	Email      *string           `json:"email"`
	AssignedTo *string           `json:"assignedTo"`
	Notes      *string           `json:"notes"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLeadRequest) ToEntity() *lead.Lead {
	l := lead.NewLead(r.Code, r.Name, r.Source)
	l.Company = r.Company
	l.Phone = r.Phone
	l.Email = r.Email
	l.Notes = r.Notes
	l.Attributes = r.Attributes

	if r.AssignedTo != nil && *r.AssignedTo != "" {
		if parsed, err := id.Parse(*r.AssignedTo); err == nil {
			l.AssignedTo = &parsed
		}
	}

	return l
}

// UpdateLeadRequest is the request body for updating a lead.
// Status is changed through the dedicated transition endpoint.
type UpdateLeadRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Source     lead.Source       `json:"source" binding:"required"`
	Company    *string           `json:"company,omitempty"`
	Phone      *string           `json:"phone,omitempty"`
	Email      *string           `json:"email,omitempty"`
	AssignedTo *string           `json:"assignedTo,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLeadRequest) ApplyTo(l *lead.Lead) {
	l.Code = r.Code
	l.Name = r.Name
	l.Source = r.Source
	l.Company = r.Company
	l.Phone = r.Phone
	l.Email = r.Email
	l.Notes = r.Notes
	l.Attributes = r.Attributes
	l.Version = r.Version

	l.AssignedTo = nil
	if r.AssignedTo != nil && *r.AssignedTo != "" {
		if parsed, err := id.Parse(*r.AssignedTo); err == nil {
			l.AssignedTo = &parsed
		}
	}
}

// UpdateLeadStatusRequest moves a lead through the pipeline.
type UpdateLeadStatusRequest struct {
	Status lead.Status `json:"status" binding:"required"`
}

// AssignLeadRequest sets the responsible agent.
type AssignLeadRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

// --- Response DTOs ---

// LeadResponse is the response body for a lead.
type LeadResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Status       lead.Status       `json:"status"`
	Source       lead.Source       `json:"source"`
	Company      *string           `json:"company,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Email        *string           `json:"email,omitempty"`
	AssignedTo   *string           `json:"assignedTo,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromLead creates response DTO from domain entity.
func FromLead(l *lead.Lead) *LeadResponse {
	resp := &LeadResponse{
		ID:           l.ID.String(),
		Code:         l.Code,
		Name:         l.Name,
		Status:       l.Status,
		Source:       l.Source,
		Company:      l.Company,
		Phone:        l.Phone,
		Email:        l.Email,
		Notes:        l.Notes,
		DeletionMark: l.DeletionMark,
		Version:      l.Version,
		Attributes:   l.Attributes,
	}

	if l.AssignedTo != nil {
		assigned := l.AssignedTo.String()
		resp.AssignedTo = &assigned
	}

	return resp
}
