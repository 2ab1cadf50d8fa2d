package toolset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_Deterministic(t *testing.T) {
	value := map[string]interface{}{
		"zebra": 1,
		"alpha": map[string]interface{}{"nested": true},
		"mango": []interface{}{"a", "b"},
	}
	first := format(value)
	second := format(value)
	assert.Equal(t, first, second)
	// object keys render in sorted order with 2-space indentation
	expect := "{\n  \"alpha\": {\n    \"nested\": true\n  },\n  \"mango\": [\n    \"a\",\n    \"b\"\n  ],\n  \"zebra\": 1\n}"
	assert.Equal(t, expect, first)
}

func TestAsCount(t *testing.T) {
	testCases := []struct {
		description string
		value       interface{}
		expect      int
	}{
		{description: "missing", value: nil, expect: 0},
		{description: "float", value: float64(7), expect: 7},
		{description: "int", value: 7, expect: 7},
		{description: "stringified", value: "42", expect: 42},
		{description: "padded string", value: " 42 ", expect: 42},
		{description: "garbage", value: "n/a", expect: 0},
		{description: "unsupported", value: []interface{}{}, expect: 0},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, asCount(testCase.value), testCase.description)
	}
}
