package dto

import (
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/entity"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
// Code is optional: the numerator assigns one when absent.
type CreateCustomerRequest struct {
	Code               string            `json:"code"`
	Name               string            `json:"name" binding:"required"`
	BusinessName       *string           `json:"businessName"`
	VATNumber          *string           `json:"vatNumber"`
	FiscalCode         *string           `json:"fiscalCode"`
	SDICode            *string           `json:"sdiCode"`
	Address            *string           `json:"address"`
	City               *string           `json:"city"`
	ZIP                *string           `json:"zip"`
	Phone              *string           `json:"phone"`
	Email              *string           `json:"email"`
	ContactPerson      *string           `json:"contactPerson"`
	PriceListMode      string            `json:"priceListMode"`
	DeliveryTariffCode string            `json:"deliveryTariffCode"`
	DetractionValue    *types.Money      `json:"detractionValue"`
	Comment            *string           `json:"comment"`
	Attributes         entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.BusinessName = r.BusinessName
	c.VATNumber = r.VATNumber
	c.FiscalCode = r.FiscalCode
	c.SDICode = r.SDICode
	c.Address = r.Address
	c.City = r.City
	c.ZIP = r.ZIP
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	if r.PriceListMode != "" {
		c.PriceListMode = r.PriceListMode
	}
	c.DeliveryTariffCode = r.DeliveryTariffCode
	c.DetractionValue = r.DetractionValue
	c.Comment = r.Comment
	c.Attributes = r.Attributes
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code               string            `json:"code"`
	Name               string            `json:"name" binding:"required"`
	BusinessName       *string           `json:"businessName"`
	VATNumber          *string           `json:"vatNumber"`
	FiscalCode         *string           `json:"fiscalCode"`
	SDICode            *string           `json:"sdiCode"`
	Address            *string           `json:"address"`
	City               *string           `json:"city"`
	ZIP                *string           `json:"zip"`
	Phone              *string           `json:"phone"`
	Email              *string           `json:"email"`
	ContactPerson      *string           `json:"contactPerson"`
	PriceListMode      string            `json:"priceListMode"`
	DeliveryTariffCode string            `json:"deliveryTariffCode"`
	DetractionValue    *types.Money      `json:"detractionValue"`
	Comment            *string           `json:"comment"`
	Attributes         entity.Attributes `json:"attributes"`
	Version            int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. The FIC client link
// is deliberately not settable over the API; the invoicing sync owns it.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.BusinessName = r.BusinessName
	c.VATNumber = r.VATNumber
	c.FiscalCode = r.FiscalCode
	c.SDICode = r.SDICode
	c.Address = r.Address
	c.City = r.City
	c.ZIP = r.ZIP
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	if r.PriceListMode != "" {
		c.PriceListMode = r.PriceListMode
	} else {
		c.PriceListMode = pricing.DefaultListMode
	}
	c.DeliveryTariffCode = r.DeliveryTariffCode
	c.DetractionValue = r.DetractionValue
	c.Comment = r.Comment
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	ID                 string            `json:"id"`
	Code               string            `json:"code"`
	Name               string            `json:"name"`
	BusinessName       *string           `json:"businessName,omitempty"`
	VATNumber          *string           `json:"vatNumber,omitempty"`
	FiscalCode         *string           `json:"fiscalCode,omitempty"`
	SDICode            *string           `json:"sdiCode,omitempty"`
	Address            *string           `json:"address,omitempty"`
	City               *string           `json:"city,omitempty"`
	ZIP                *string           `json:"zip,omitempty"`
	Phone              *string           `json:"phone,omitempty"`
	Email              *string           `json:"email,omitempty"`
	ContactPerson      *string           `json:"contactPerson,omitempty"`
	PriceListMode      string            `json:"priceListMode"`
	DeliveryTariffCode string            `json:"deliveryTariffCode"`
	DetractionValue    *types.Money      `json:"detractionValue,omitempty"`
	FICClientID        *int64            `json:"ficClientId,omitempty"`
	Comment            *string           `json:"comment,omitempty"`
	DeletionMark       bool              `json:"deletionMark"`
	Version            int               `json:"version"`
	Attributes         entity.Attributes `json:"attributes,omitempty"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:                 c.ID.String(),
		Code:               c.Code,
		Name:               c.Name,
		BusinessName:       c.BusinessName,
		VATNumber:          c.VATNumber,
		FiscalCode:         c.FiscalCode,
		SDICode:            c.SDICode,
		Address:            c.Address,
		City:               c.City,
		ZIP:                c.ZIP,
		Phone:              c.Phone,
		Email:              c.Email,
		ContactPerson:      c.ContactPerson,
		PriceListMode:      c.PriceListMode,
		DeliveryTariffCode: c.DeliveryTariffCode,
		DetractionValue:    c.DetractionValue,
		FICClientID:        c.FICClientID,
		Comment:            c.Comment,
		DeletionMark:       c.DeletionMark,
		Version:            c.Version,
		Attributes:         c.Attributes,
	}
}
