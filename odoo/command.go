package odoo

// Command is the tagged union of generic mutations and method invocations.
// Each variant knows how to render itself into the wire parameters of the
// backend execute endpoint; the wire verb exists only at that edge.
type Command interface {
	params() map[string]interface{}
}

// Create inserts a new record with the supplied field values.
type Create struct {
	Model  string
	Values map[string]interface{}
}

func (c *Create) params() map[string]interface{} {
	return map[string]interface{}{
		"model":  c.Model,
		"method": "create",
		"values": c.Values,
	}
}

// Write updates the identified records with the supplied field values.
type Write struct {
	Model  string
	IDs    []int
	Values map[string]interface{}
}

func (c *Write) params() map[string]interface{} {
	return map[string]interface{}{
		"model":  c.Model,
		"method": "write",
		"ids":    c.IDs,
		"values": c.Values,
	}
}

// Unlink deletes the identified records.
type Unlink struct {
	Model string
	IDs   []int
}

func (c *Unlink) params() map[string]interface{} {
	return map[string]interface{}{
		"model":  c.Model,
		"method": "unlink",
		"ids":    c.IDs,
	}
}

// Invoke calls an arbitrary model or recordset method; which combinations of
// ids, args and kwargs are legal is the backend's responsibility.
type Invoke struct {
	Model  string
	Method string
	IDs    []int
	Args   []interface{}
	Kwargs map[string]interface{}
}

func (c *Invoke) params() map[string]interface{} {
	result := map[string]interface{}{
		"model":  c.Model,
		"method": c.Method,
	}
	if len(c.IDs) > 0 {
		result["ids"] = c.IDs
	}
	if len(c.Args) > 0 {
		result["args"] = c.Args
	}
	if len(c.Kwargs) > 0 {
		result["kwargs"] = c.Kwargs
	}
	return result
}
