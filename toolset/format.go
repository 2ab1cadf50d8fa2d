package toolset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// format renders a value as 2-space indented JSON. Object keys marshal in
// sorted order, so the rendering is deterministic for a given input.
func format(value interface{}) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

// asCount extracts an integer count; the backend stringifies scalar execute
// results, and a missing count renders as zero.
func asCount(value interface{}) int {
	switch actual := value.(type) {
	case int:
		return actual
	case int64:
		return int(actual)
	case float64:
		return int(actual)
	case json.Number:
		if i, err := actual.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(actual)); err == nil {
			return i
		}
	}
	return 0
}
