package fic

import "encoding/json"

// Wire types for the Fatture in Cloud API v2. Monetary fields are
// float64 here because the API wants plain JSON numbers; decimal
// precision is kept in the domain and only converted at this boundary.

// ClientEntity is a client record in Fatture in Cloud.
type ClientEntity struct {
	ID        int64  `json:"id,omitempty"`
	Type      string `json:"type,omitempty"` // "company" or "person"
	Name      string `json:"name,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
	TaxCode   string `json:"tax_code,omitempty"`

	AddressStreet   string `json:"address_street,omitempty"`
	AddressPostcode string `json:"address_postal_code,omitempty"`
	AddressCity     string `json:"address_city,omitempty"`
	AddressProvince string `json:"address_province,omitempty"`
	Country         string `json:"country,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	// Payment defaults, present on the detailed fieldset only.
	DefaultPaymentTerms     int             `json:"default_payment_terms,omitempty"`
	DefaultPaymentTermsType string          `json:"default_payment_terms_type,omitempty"` // "standard" or "end_of_month"
	DefaultPaymentMethod    *PaymentMethod  `json:"default_payment_method,omitempty"`
}

// PaymentMethod references a configured payment method.
type PaymentMethod struct {
	ID int64 `json:"id"`
}

// VAT identifies a VAT rate. Rate id 0 is the standard italian 22%.
type VAT struct {
	ID    int     `json:"id"`
	Value float64 `json:"value,omitempty"`
}

// DocumentItem is one line of an issued document.
type DocumentItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Qty         int     `json:"qty"`
	NetPrice    float64 `json:"net_price"`
	VAT         VAT     `json:"vat"`
}

// DocumentPayment is one entry of the payments list.
type DocumentPayment struct {
	Amount        float64        `json:"amount"`
	DueDate       string         `json:"due_date"` // YYYY-MM-DD
	Status        string         `json:"status"`   // "not_paid" / "paid"
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
}

// DocumentEntity references the client of an issued document. The
// order payload carries the full registry snapshot, not just the id.
type DocumentEntity struct {
	ID              int64  `json:"id"`
	Name            string `json:"name,omitempty"`
	VATNumber       string `json:"vat_number,omitempty"`
	TaxCode         string `json:"tax_code,omitempty"`
	AddressStreet   string `json:"address_street,omitempty"`
	AddressPostcode string `json:"address_postal_code,omitempty"`
	AddressCity     string `json:"address_city,omitempty"`
	AddressProvince string `json:"address_province,omitempty"`
	Country         string `json:"country,omitempty"`
}

// IssuedDocument is an order or delivery note in Fatture in Cloud.
type IssuedDocument struct {
	ID             int64          `json:"id,omitempty"`
	Type           string         `json:"type,omitempty"` // "order", "delivery_note"
	Entity         DocumentEntity `json:"entity"`
	Date           string         `json:"date,omitempty"` // YYYY-MM-DD
	VisibleSubject string         `json:"visible_subject,omitempty"`
	Notes          string         `json:"notes,omitempty"`

	// Currency and language are passed through untouched when joining
	// orders into a cumulative delivery note.
	Language json.RawMessage `json:"language,omitempty"`
	Currency json.RawMessage `json:"currency,omitempty"`

	ItemsList    []DocumentItem    `json:"items_list,omitempty"`
	PaymentsList []DocumentPayment `json:"payments_list,omitempty"`

	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`

	Stock             bool `json:"stock"`
	ShowPayments      bool `json:"show_payments"`
	ShowPaymentMethod bool `json:"show_payment_method"`

	// Delivery note (DDT) section.
	DeliveryNote       bool   `json:"delivery_note,omitempty"`
	DNNumber           int64  `json:"dn_number,omitempty"`
	DNDate             string `json:"dn_date,omitempty"`
	DNAIPackagesNumber string `json:"dn_ai_packages_number,omitempty"`
	DNAIWeight         string `json:"dn_ai_weight,omitempty"`
	DNAICausal         string `json:"dn_ai_causal,omitempty"`
	DNAITransporter    string `json:"dn_ai_transporter,omitempty"`

	CDriverAndContents *driverAndContents `json:"c_driver_and_contents,omitempty"`

	URL string `json:"url,omitempty"`
}

// driverAndContents mirrors the standard transport section so the
// delivery note renders correctly in the Fatture in Cloud UI.
type driverAndContents struct {
	PackagesNumber  int    `json:"packages_number"`
	TransportCausal string `json:"transport_causal"`
}

// deliveryNoteUpdate is the partial PUT payload that converts an
// existing order into a delivery note.
type deliveryNoteUpdate struct {
	DeliveryNote       bool              `json:"delivery_note"`
	DNNumber           int64             `json:"dn_number"`
	DNDate             string            `json:"dn_date"`
	DNAIPackagesNumber string            `json:"dn_ai_packages_number"`
	DNAICausal         string            `json:"dn_ai_causal"`
	DNAITransporter    string            `json:"dn_ai_transporter"`
	DNAIWeight         string            `json:"dn_ai_weight,omitempty"`
	CDriverAndContents driverAndContents `json:"c_driver_and_contents"`
}

type deliveryNoteUpdateRequest struct {
	Data deliveryNoteUpdate `json:"data"`
}

// API envelope types.

type clientListResponse struct {
	Data []ClientEntity `json:"data"`
}

type clientResponse struct {
	Data ClientEntity `json:"data"`
}

type clientRequest struct {
	Data ClientEntity `json:"data"`
}

type documentResponse struct {
	Data IssuedDocument `json:"data"`
}

type documentRequest struct {
	Data IssuedDocument `json:"data"`
}

type documentInfoResponse struct {
	Data struct {
		NextNumber int64 `json:"next_number"`
	} `json:"data"`
}
