// Package fic integrates with the Fatture in Cloud API v2: client
// registry lookup, sales order creation on quote acceptance, and
// delivery note (DDT) issuing.
package fic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api-v2.fattureincloud.it"

// Config holds the API connection settings.
type Config struct {
	BaseURL   string
	CompanyID int64

	Token TokenConfig
}

// Client is a thin HTTP client over the issued-documents and client
// registry endpoints the sync needs.
type Client struct {
	baseURL   string
	companyID int64
	tokens    *TokenSource
	http      *http.Client
}

// NewClient creates an API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cfg.Token.TokenURL == "" {
		cfg.Token.TokenURL = baseURL + "/oauth/token"
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		companyID: cfg.CompanyID,
		tokens:    NewTokenSource(cfg.Token, httpClient),
		http:      httpClient,
	}
}

// do performs an authenticated JSON request against a company path.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/c/%d%s", c.baseURL, c.companyID, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// SearchClientByVAT looks up a client by VAT number.
// Returns nil when no client matches.
func (c *Client) SearchClientByVAT(ctx context.Context, vat string) (*ClientEntity, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("vat_number = '%s'", vat))

	var resp clientListResponse
	if err := c.do(ctx, http.MethodGet, "/entities/clients", query, nil, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}

// CreateClient registers a new client.
func (c *Client) CreateClient(ctx context.Context, client ClientEntity) (*ClientEntity, error) {
	var resp clientResponse
	err := c.do(ctx, http.MethodPost, "/entities/clients", nil, clientRequest{Data: client}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetClientDetailed fetches the full client record including payment
// defaults and registry addresses.
func (c *Client) GetClientDetailed(ctx context.Context, clientID int64) (*ClientEntity, error) {
	query := url.Values{}
	query.Set("fieldset", "detailed")

	var resp clientResponse
	path := "/entities/clients/" + strconv.FormatInt(clientID, 10)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateOrder creates a sales order document.
func (c *Client) CreateOrder(ctx context.Context, doc IssuedDocument) (*IssuedDocument, error) {
	doc.Type = "order"

	var resp documentResponse
	err := c.do(ctx, http.MethodPost, "/issued_documents", nil, documentRequest{Data: doc}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// NextDeliveryNoteNumber returns the next free DDT number. The PUT
// that converts an order does not assign one itself.
func (c *Client) NextDeliveryNoteNumber(ctx context.Context) (int64, error) {
	query := url.Values{}
	query.Set("type", "delivery_note")

	var resp documentInfoResponse
	if err := c.do(ctx, http.MethodGet, "/issued_documents/info", query, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Data.NextNumber, nil
}

// ConvertToDeliveryNote attaches a DDT to an existing order in place.
func (c *Client) ConvertToDeliveryNote(ctx context.Context, documentID int64, update deliveryNoteUpdate) (*IssuedDocument, error) {
	var resp documentResponse
	path := "/issued_documents/" + strconv.FormatInt(documentID, 10)
	err := c.do(ctx, http.MethodPut, path, nil, deliveryNoteUpdateRequest{Data: update}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// JoinDocuments merges several orders into a single delivery-note
// document body, ready to be created with CreateDocument.
func (c *Client) JoinDocuments(ctx context.Context, ids []int64) (*IssuedDocument, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.FormatInt(id, 10)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(strIDs, ","))
	query.Set("type", "delivery_note")

	var resp documentResponse
	if err := c.do(ctx, http.MethodGet, "/issued_documents/join", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateDocument creates an issued document of any type.
func (c *Client) CreateDocument(ctx context.Context, doc IssuedDocument) (*IssuedDocument, error) {
	var resp documentResponse
	err := c.do(ctx, http.MethodPost, "/issued_documents", nil, documentRequest{Data: doc}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
