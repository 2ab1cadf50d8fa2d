package toolset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"

	"github.com/viant/mcp-odoo/odoo"
)

const (
	defaultLimit = 20
	//limitCeiling caps every search-like call regardless of the requested
	//value, bounding response size and remote load.
	limitCeiling = 100

	errorPrefix       = "Error: "
	notConnectedReply = "Not connected to Odoo. Use odoo_reconnect first."
	reconnectFailed   = "Failed to connect to Odoo. Check that the server is running and reachable."
)

// Backend is the generic command surface the dispatcher drives;
// *odoo.Service implements it. Keeping it an interface lets tests substitute
// an in-memory double.
type Backend interface {
	Authenticate(ctx context.Context) error
	UID() *int
	Capabilities(ctx context.Context) (map[string]interface{}, error)
	Schema(ctx context.Context, model, viewType string) (map[string]interface{}, error)
	Search(ctx context.Context, request *odoo.SearchRequest) (*odoo.SearchResult, error)
	Execute(ctx context.Context, command odoo.Command) (map[string]interface{}, error)
}

// Service routes named tool invocations to generic backend verbs. It is
// stateless across invocations apart from the shared backend handle; every
// failure is converted into a single error text reply and never escapes
// to the transport.
type Service struct {
	backend Backend
}

// Reconnect (re)establishes the backend session. It is the only tool that
// runs regardless of connection state - the escape hatch when the initial
// authentication failed. The failure reply stays generic so credential
// material never leaks.
func (s *Service) Reconnect(ctx context.Context, input *ReconnectInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if err := s.backend.Authenticate(ctx); err != nil {
		return errorResult(reconnectFailed), nil
	}
	uid := s.backend.UID()
	if uid == nil {
		return errorResult(reconnectFailed), nil
	}
	return textResult(fmt.Sprintf("Connected to Odoo as uid=%v", *uid)), nil
}

// Capabilities returns accessible menus and models for the current user.
func (s *Service) Capabilities(ctx context.Context, input *CapabilitiesInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	result, err := s.backend.Capabilities(ctx)
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Search queries records in any model.
func (s *Service) Search(ctx context.Context, input *SearchInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	result, err := s.backend.Search(ctx, &odoo.SearchRequest{
		Model:  input.Model,
		Domain: input.Domain,
		Fields: input.Fields,
		Limit:  clampLimit(input.Limit),
		Offset: intValue(input.Offset),
		Order:  stringValue(input.Order),
	})
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Read fetches a single record by id, implemented as an equality search
// limited to one result. Zero matches yield a distinct not-found reply to
// disambiguate from an empty collection.
func (s *Service) Read(ctx context.Context, input *ReadInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	if reply := requiredId(input.Id); reply != nil {
		return reply, nil
	}
	result, err := s.backend.Search(ctx, &odoo.SearchRequest{
		Model:  input.Model,
		Domain: []interface{}{[]interface{}{"id", "=", *input.Id}},
		Fields: input.Fields,
		Limit:  1,
	})
	if err != nil {
		return s.failure(err), nil
	}
	if len(result.Records) == 0 {
		return errorResult(fmt.Sprintf("Record not found: %v id=%v", input.Model, *input.Id)), nil
	}
	return textResult(format(result.Records[0])), nil
}

// Count counts records matching a domain; a result without a count renders
// as zero rather than omitting the field.
func (s *Service) Count(ctx context.Context, input *CountInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	domain := input.Domain
	if domain == nil {
		domain = []interface{}{}
	}
	result, err := s.backend.Execute(ctx, &odoo.Invoke{
		Model:  input.Model,
		Method: "search_count",
		Args:   []interface{}{domain},
	})
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(fmt.Sprintf("Count: %v", asCount(result["result"]))), nil
}

// Create inserts a new record.
func (s *Service) Create(ctx context.Context, input *CreateInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	if len(input.Values) == 0 {
		return errorResult(errorPrefix + "missing required argument: values"), nil
	}
	result, err := s.backend.Execute(ctx, &odoo.Create{Model: input.Model, Values: input.Values})
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Update writes field values on an existing record.
func (s *Service) Update(ctx context.Context, input *UpdateInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	if reply := requiredId(input.Id); reply != nil {
		return reply, nil
	}
	if len(input.Values) == 0 {
		return errorResult(errorPrefix + "missing required argument: values"), nil
	}
	result, err := s.backend.Execute(ctx, &odoo.Write{Model: input.Model, IDs: []int{*input.Id}, Values: input.Values})
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, input *DeleteInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	if reply := requiredId(input.Id); reply != nil {
		return reply, nil
	}
	result, err := s.backend.Execute(ctx, &odoo.Unlink{Model: input.Model, IDs: []int{*input.Id}})
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Schema returns field definitions for a model and view kind. An
// inaccessible model degrades gracefully: the backend reports the error
// inside the result and the reply renders it as-is.
func (s *Service) Schema(ctx context.Context, input *SchemaInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	result, err := s.backend.Schema(ctx, input.Model, stringValue(input.ViewType))
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Execute invokes an arbitrary model method; which id/args combinations are
// legal is left to the backend, whose rejection surfaces as an error reply.
func (s *Service) Execute(ctx context.Context, input *ExecuteInput) (*schema.CallToolResult, *jsonrpc.Error) {
	if reply := s.gate(); reply != nil {
		return reply, nil
	}
	if reply := required(input.Model, "model"); reply != nil {
		return reply, nil
	}
	if reply := required(input.Method, "method"); reply != nil {
		return reply, nil
	}
	result, err := s.backend.Execute(ctx, &odoo.Invoke{
		Model:  input.Model,
		Method: input.Method,
		IDs:    input.Ids,
		Args:   input.Args,
		Kwargs: input.Kwargs,
	})
	if err != nil {
		return s.failure(err), nil
	}
	return textResult(format(result)), nil
}

// Dispatch routes a named invocation with a raw argument mapping; an
// unrecognized name yields an explicit unknown-tool reply.
func (s *Service) Dispatch(ctx context.Context, name string, arguments map[string]interface{}) *schema.CallToolResult {
	var result *schema.CallToolResult
	var err error
	switch name {
	case ToolReconnect:
		result, _ = s.Reconnect(ctx, &ReconnectInput{})
	case ToolCapabilities:
		result, _ = s.Capabilities(ctx, &CapabilitiesInput{})
	case ToolSearch:
		result, err = dispatch(ctx, arguments, s.Search)
	case ToolRead:
		result, err = dispatch(ctx, arguments, s.Read)
	case ToolCount:
		result, err = dispatch(ctx, arguments, s.Count)
	case ToolCreate:
		result, err = dispatch(ctx, arguments, s.Create)
	case ToolUpdate:
		result, err = dispatch(ctx, arguments, s.Update)
	case ToolDelete:
		result, err = dispatch(ctx, arguments, s.Delete)
	case ToolSchema:
		result, err = dispatch(ctx, arguments, s.Schema)
	case ToolExecute:
		result, err = dispatch(ctx, arguments, s.Execute)
	default:
		return errorResult(fmt.Sprintf("Unknown tool: %v", name))
	}
	if err != nil {
		return errorResult(fmt.Sprintf("%vinvalid arguments for %v: %v", errorPrefix, name, err))
	}
	return result
}

func dispatch[T any](ctx context.Context, arguments map[string]interface{}, handler func(context.Context, *T) (*schema.CallToolResult, *jsonrpc.Error)) (*schema.CallToolResult, error) {
	input := new(T)
	data, err := json.Marshal(arguments)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(data, input); err != nil {
		return nil, err
	}
	result, _ := handler(ctx, input)
	return result, nil
}

// Register adds every catalog entry to the handler's tool registry.
func (s *Service) Register(handler *protoserver.DefaultHandler) error {
	if err := protoserver.RegisterTool[*ReconnectInput, *Output](handler.Registry, ToolReconnect, descReconnect, s.Reconnect); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*CapabilitiesInput, *Output](handler.Registry, ToolCapabilities, descCapabilities, s.Capabilities); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*SearchInput, *Output](handler.Registry, ToolSearch, descSearch, s.Search); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*ReadInput, *Output](handler.Registry, ToolRead, descRead, s.Read); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*CountInput, *Output](handler.Registry, ToolCount, descCount, s.Count); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*CreateInput, *Output](handler.Registry, ToolCreate, descCreate, s.Create); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*UpdateInput, *Output](handler.Registry, ToolUpdate, descUpdate, s.Update); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*DeleteInput, *Output](handler.Registry, ToolDelete, descDelete, s.Delete); err != nil {
		return err
	}
	if err := protoserver.RegisterTool[*SchemaInput, *Output](handler.Registry, ToolSchema, descSchema, s.Schema); err != nil {
		return err
	}
	return protoserver.RegisterTool[*ExecuteInput, *Output](handler.Registry, ToolExecute, descExecute, s.Execute)
}

// gate short-circuits every tool except reconnect when no authenticated user
// is present; no network call is attempted.
func (s *Service) gate() *schema.CallToolResult {
	if s.backend.UID() == nil {
		return errorResult(notConnectedReply)
	}
	return nil
}

// failure converts a typed error into the uniform error reply, keeping the
// backend reported message verbatim when available.
func (s *Service) failure(err error) *schema.CallToolResult {
	if errors.Is(err, odoo.ErrNotConnected) {
		return errorResult(notConnectedReply)
	}
	var remoteErr *odoo.RemoteError
	if errors.As(err, &remoteErr) {
		return errorResult(errorPrefix + remoteErr.Message)
	}
	return errorResult(errorPrefix + err.Error())
}

func required(value, name string) *schema.CallToolResult {
	if value == "" {
		return errorResult(fmt.Sprintf("%vmissing required argument: %v", errorPrefix, name))
	}
	return nil
}

func requiredId(value *int) *schema.CallToolResult {
	if value == nil {
		return errorResult(errorPrefix + "missing required argument: id")
	}
	return nil
}

func clampLimit(limit *int) int {
	if limit == nil || *limit <= 0 {
		return defaultLimit
	}
	if *limit > limitCeiling {
		return limitCeiling
	}
	return *limit
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func textResult(text string) *schema.CallToolResult {
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: text},
		},
	}
}

func errorResult(text string) *schema.CallToolResult {
	isError := true
	result := textResult(text)
	result.IsError = &isError
	return result
}

// New creates the dispatcher over the supplied backend.
func New(backend Backend) *Service {
	return &Service{backend: backend}
}
