package toolset

// Tool names exposed to the agent. Every dispatchable name maps to exactly
// one catalog entry, constructed once at registration and read-only after.
const (
	ToolReconnect    = "odoo_reconnect"
	ToolCapabilities = "odoo_capabilities"
	ToolSearch       = "odoo_search"
	ToolRead         = "odoo_read"
	ToolCount        = "odoo_count"
	ToolCreate       = "odoo_create"
	ToolUpdate       = "odoo_update"
	ToolDelete       = "odoo_delete"
	ToolSchema       = "odoo_schema"
	ToolExecute      = "odoo_execute"
)

const (
	descReconnect    = "Reconnect to Odoo server. Use this if Odoo was started after the MCP server, or if connection was lost."
	descCapabilities = "Get list of accessible menus and models for the current user. Use this first to understand what you can access."
	descSearch       = "Search for records in any Odoo model. Supports filtering, field selection, pagination, and sorting."
	descRead         = "Read a specific record by ID with detailed field values."
	descCount        = "Count records matching a domain filter. Use for statistics without fetching data."
	descCreate       = "Create a new record in any Odoo model. Respects field validation and permissions."
	descUpdate       = "Update an existing record. Respects field validation and permissions."
	descDelete       = "Delete a record. Respects model-level permissions."
	descSchema       = "Get field definitions for a model. Use to understand data structure before creating/updating."
	descExecute      = "Execute a method/button action on an Odoo model. Use for actions like 'action_confirm', 'action_cancel', etc."
)

// ReconnectInput has no parameters.
type ReconnectInput struct{}

// CapabilitiesInput has no parameters.
type CapabilitiesInput struct{}

// SearchInput describes the odoo_search parameters.
type SearchInput struct {
	Model  string        `json:"model" description:"Model name (e.g. 'res.partner', 'sale.order')"`
	Domain []interface{} `json:"domain,omitempty" description:"Odoo domain filter, e.g. [[\"state\", \"=\", \"draft\"]]"`
	Fields []string      `json:"fields,omitempty" description:"Field names to return. Omit for smart defaults."`
	Limit  *int          `json:"limit,omitempty" description:"Max records (default 20, max 100)"`
	Offset *int          `json:"offset,omitempty" description:"Pagination offset"`
	Order  *string       `json:"order,omitempty" description:"Sort order, e.g. 'name asc' or 'create_date desc'"`
}

// ReadInput describes the odoo_read parameters.
type ReadInput struct {
	Model  string   `json:"model" description:"Model name"`
	Id     *int     `json:"id" description:"Record ID"`
	Fields []string `json:"fields,omitempty" description:"Field names to return"`
}

// CountInput describes the odoo_count parameters.
type CountInput struct {
	Model  string        `json:"model" description:"Model name"`
	Domain []interface{} `json:"domain,omitempty" description:"Odoo domain filter"`
}

// CreateInput describes the odoo_create parameters.
type CreateInput struct {
	Model  string                 `json:"model" description:"Model name"`
	Values map[string]interface{} `json:"values" description:"Field values for the new record"`
}

// UpdateInput describes the odoo_update parameters.
type UpdateInput struct {
	Model  string                 `json:"model" description:"Model name"`
	Id     *int                   `json:"id" description:"Record ID to update"`
	Values map[string]interface{} `json:"values" description:"Field values to update"`
}

// DeleteInput describes the odoo_delete parameters.
type DeleteInput struct {
	Model string `json:"model" description:"Model name"`
	Id    *int   `json:"id" description:"Record ID to delete"`
}

// SchemaInput describes the odoo_schema parameters.
type SchemaInput struct {
	Model    string  `json:"model" description:"Model name"`
	ViewType *string `json:"view_type,omitempty" description:"View kind: form, tree or search (default form)"`
}

// ExecuteInput describes the odoo_execute parameters.
type ExecuteInput struct {
	Model  string                 `json:"model" description:"Model name (e.g. 'sale.order')"`
	Method string                 `json:"method" description:"Method name to call (e.g. 'action_confirm')"`
	Ids    []int                  `json:"ids,omitempty" description:"Record IDs to execute on"`
	Args   []interface{}          `json:"args,omitempty" description:"Positional arguments"`
	Kwargs map[string]interface{} `json:"kwargs,omitempty" description:"Keyword arguments"`
}

// Output mirrors the uniform reply payload: a single text segment.
type Output struct {
	Text string `json:"text"`
}
