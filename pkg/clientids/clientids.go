// Package clientids manages client ids, the public credentials a browser or
// mobile app uses instead of an API key. Each client id is bound to a set of
// allowed origins and may carry a platform fee.
package clientids

import (
	"context"
	"net/http"
	"net/url"

	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
)

// Operation ids.
const (
	OpCreate = "ClientIdV2Controller_create_v2"
	OpList   = "ClientIdV2Controller_findAll_v2"
	OpGet    = "ClientIdV2Controller_findOne_v2"
	OpUpdate = "ClientIdV2Controller_update_v2"
	OpRevoke = "ClientIdV2Controller_delete_v2"
)

// Status values of a client id.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusRevoked  = "revoked"
)

// ClientID is a registered client id.
type ClientID struct {
	ID             string   `json:"id"`
	ClientID       string   `json:"clientId"`
	Label          string   `json:"label,omitempty"`
	AllowedDomains []string `json:"allowedDomains,omitempty"`
	FeePercentage  *string  `json:"feePercentage,omitempty"`
	FeeAddress     *string  `json:"feeAddress,omitempty"`
	Status         string   `json:"status,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	LastUsedAt     *string  `json:"lastUsedAt,omitempty"`
}

// CreateRequest is the body of Create.
type CreateRequest struct {
	Label          string   `json:"label"`
	AllowedDomains []string `json:"allowedDomains"`
	FeePercentage  string   `json:"feePercentage,omitempty"`
	FeeAddress     string   `json:"feeAddress,omitempty"`
}

// UpdateRequest is the body of Update. Nil fields are left unchanged.
type UpdateRequest struct {
	Label          *string  `json:"label,omitempty"`
	AllowedDomains []string `json:"allowedDomains,omitempty"`
	FeePercentage  *string  `json:"feePercentage,omitempty"`
	FeeAddress     *string  `json:"feeAddress,omitempty"`
	Status         *string  `json:"status,omitempty"`
}

// API is the client ids facade.
type API struct {
	d *dispatch.Dispatcher
}

// New creates the client ids facade.
func New(d *dispatch.Dispatcher) *API {
	return &API{d: d}
}

// Create registers a client id.
func (a *API) Create(ctx context.Context, body *CreateRequest, opts ...dispatch.CallOption) (*ClientID, error) {
	reqKey := schema.RequestKey(OpCreate)
	resKey := schema.ResponseKey(OpCreate, http.StatusCreated)
	return a.one(ctx, dispatch.Apply(&transport.Request{
		OperationID:    OpCreate,
		Method:         http.MethodPost,
		Path:           "/v2/client-ids",
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
}

// List returns every client id of the account.
func (a *API) List(ctx context.Context, opts ...dispatch.CallOption) ([]ClientID, error) {
	resKey := schema.ResponseKey(OpList, http.StatusOK)
	return dispatch.Do[[]ClientID](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpList,
		Method:         http.MethodGet,
		Path:           "/v2/client-ids",
		ResponseSchema: &resKey,
	}, opts...))
}

// Get returns one client id.
func (a *API) Get(ctx context.Context, id string, opts ...dispatch.CallOption) (*ClientID, error) {
	resKey := schema.ResponseKey(OpGet, http.StatusOK)
	return a.one(ctx, dispatch.Apply(&transport.Request{
		OperationID:    OpGet,
		Method:         http.MethodGet,
		Path:           itemPath(id),
		ResponseSchema: &resKey,
	}, opts...))
}

// Update changes a client id.
func (a *API) Update(ctx context.Context, id string, body *UpdateRequest, opts ...dispatch.CallOption) (*ClientID, error) {
	reqKey := schema.RequestKey(OpUpdate)
	resKey := schema.ResponseKey(OpUpdate, http.StatusOK)
	return a.one(ctx, dispatch.Apply(&transport.Request{
		OperationID:    OpUpdate,
		Method:         http.MethodPut,
		Path:           itemPath(id),
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
}

// Revoke permanently disables a client id.
func (a *API) Revoke(ctx context.Context, id string, opts ...dispatch.CallOption) error {
	return a.d.RequestVoid(ctx, dispatch.Apply(&transport.Request{
		OperationID: OpRevoke,
		Method:      http.MethodDelete,
		Path:        itemPath(id),
	}, opts...))
}

func (a *API) one(ctx context.Context, req *transport.Request) (*ClientID, error) {
	out, err := dispatch.Do[ClientID](ctx, a.d, req)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func itemPath(id string) string {
	return "/v2/client-ids/" + url.PathEscape(id)
}
