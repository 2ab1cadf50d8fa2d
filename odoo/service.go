package odoo

import (
	"context"
	"encoding/json"
	"fmt"
)

const defaultViewType = "form"

// Service is a thin typed facade over Client exposing the fixed generic
// verbs - the only vocabulary for touching the backend. It performs no
// client side authorization: access control stays with the backend, which
// rejects unauthorized operations with a descriptive error.
type Service struct {
	client *Client
}

// SearchRequest describes a generic record query; Domain and record values
// are opaque pass-through beyond serialization.
type SearchRequest struct {
	Model  string
	Domain []interface{}
	Fields []string
	Limit  int
	Offset int
	Order  string
}

// SearchResult holds matched records plus the backend reported count.
type SearchResult struct {
	Model   string                   `json:"model"`
	Count   int                      `json:"count"`
	Records []map[string]interface{} `json:"records"`
}

// Authenticate (re)establishes the backend session.
func (s *Service) Authenticate(ctx context.Context) error {
	return s.client.Authenticate(ctx)
}

// UID returns the authenticated user identifier, nil when not connected.
func (s *Service) UID() *int {
	return s.client.UID()
}

// Capabilities returns the user identity and accessible menu/model metadata,
// pass-through.
func (s *Service) Capabilities(ctx context.Context) (map[string]interface{}, error) {
	return s.client.Call(ctx, endpointCapabilities, nil)
}

// Schema returns field definitions visible in the named view kind. An
// inaccessible model degrades gracefully: the backend reports it as an error
// field inside the result, which is passed through.
func (s *Service) Schema(ctx context.Context, model, viewType string) (map[string]interface{}, error) {
	if viewType == "" {
		viewType = defaultViewType
	}
	return s.client.Call(ctx, fmt.Sprintf("/mcp/model/%v/schema", model), map[string]interface{}{
		"view_type": viewType,
	})
}

// Search queries records; capping the limit is the caller's responsibility.
func (s *Service) Search(ctx context.Context, request *SearchRequest) (*SearchResult, error) {
	domain := request.Domain
	if domain == nil {
		domain = []interface{}{}
	}
	params := map[string]interface{}{
		"model":  request.Model,
		"domain": domain,
		"limit":  request.Limit,
		"offset": request.Offset,
	}
	if request.Fields != nil {
		params["fields"] = request.Fields
	}
	if request.Order != "" {
		params["order"] = request.Order
	}
	result, err := s.client.Call(ctx, endpointSearch, params)
	if err != nil {
		return nil, err
	}
	if remoteErr := resultError(result); remoteErr != nil {
		return nil, remoteErr
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search result: %w", err)
	}
	ret := &SearchResult{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse search result: %w", err)
	}
	return ret, nil
}

// Execute runs a generic mutation or method invocation. The backend reports
// rejections either as a JSON-RPC error or as an error field inside the
// result; both surface as RemoteError.
func (s *Service) Execute(ctx context.Context, command Command) (map[string]interface{}, error) {
	result, err := s.client.Call(ctx, endpointExecute, command.params())
	if err != nil {
		return nil, err
	}
	if remoteErr := resultError(result); remoteErr != nil {
		return nil, remoteErr
	}
	return result, nil
}

func resultError(result map[string]interface{}) error {
	value, ok := result["error"]
	if !ok {
		return nil
	}
	if message, ok := value.(string); ok {
		return &RemoteError{Message: message}
	}
	data, _ := json.Marshal(value)
	return &RemoteError{Message: string(data)}
}

// NewService creates the generic verb facade over the supplied client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}
