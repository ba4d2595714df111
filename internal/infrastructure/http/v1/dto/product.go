package dto

import (
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	SKU         *string             `json:"sku"`
	Barcode     *string             `json:"barcode"`
	UnitPrice   types.Money         `json:"unitPrice"`
	IsActive    *bool               `json:"isActive"`
	Description *string             `json:"description"`
	ImageURL    *string             `json:"imageUrl"`
	ParentID    *string             `json:"parentId"`
	IsFolder    bool                `json:"isFolder"`
	Attributes  entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Type)
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.UnitPrice = r.UnitPrice
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	SKU         *string             `json:"sku,omitempty"`
	Barcode     *string             `json:"barcode,omitempty"`
	UnitPrice   types.Money         `json:"unitPrice"`
	IsActive    bool                `json:"isActive"`
	Description *string             `json:"description,omitempty"`
	ImageURL    *string             `json:"imageUrl,omitempty"`
	ParentID    *string             `json:"parentId,omitempty"`
	IsFolder    bool                `json:"isFolder"`
	Attributes  entity.Attributes   `json:"attributes"`
	Version     int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = r.Type
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.UnitPrice = r.UnitPrice
	p.IsActive = r.IsActive
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID           string              `json:"id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Type         product.ProductType `json:"type"`
	SKU          *string             `json:"sku,omitempty"`
	Barcode      *string             `json:"barcode,omitempty"`
	UnitPrice    types.Money         `json:"unitPrice"`
	IsActive     bool                `json:"isActive"`
	Description  *string             `json:"description,omitempty"`
	ImageURL     *string             `json:"imageUrl,omitempty"`
	ParentID     *string             `json:"parentId,omitempty"`
	IsFolder     bool                `json:"isFolder"`
	DeletionMark bool                `json:"deletionMark"`
	Version      int                 `json:"version"`
	Attributes   entity.Attributes   `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		Type:         p.Type,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		UnitPrice:    p.UnitPrice,
		IsActive:     p.IsActive,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		ParentID:     p.ParentID,
		IsFolder:     p.IsFolder,
		DeletionMark: p.DeletionMark,
		Version:      p.Version,
		Attributes:   p.Attributes,
	}
}
