package odoo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Init(t *testing.T) {
	config := &Config{URL: "http://localhost:8069///", Database: "demo", Username: "admin"}
	err := config.Init(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:8069", config.URL)
	assert.Equal(t, defaultLang, config.PreferredLang)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		config      Config
		valid       bool
	}{
		{description: "login strategy", config: Config{URL: "http://localhost:8069", Database: "demo", Username: "admin", Password: "secret"}, valid: true},
		{description: "bearer strategy", config: Config{URL: "http://localhost:8069", APIKey: "key-1"}, valid: true},
		{description: "missing url", config: Config{Database: "demo", Username: "admin"}, valid: false},
		{description: "missing database", config: Config{URL: "http://localhost:8069", Username: "admin"}, valid: false},
		{description: "missing credentials", config: Config{URL: "http://localhost:8069", Database: "demo"}, valid: false},
	}
	for _, testCase := range testCases {
		err := testCase.config.Validate()
		if testCase.valid {
			assert.Nil(t, err, testCase.description)
		} else {
			assert.NotNil(t, err, testCase.description)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(URL, []byte(`{"url":"https://erp.example.com","database":"prod","apiKey":"key-1"}`), 0644)
	if !assert.Nil(t, err) {
		return
	}
	config, err := LoadConfig(context.Background(), URL)
	assert.Nil(t, err)
	assert.Equal(t, "https://erp.example.com", config.URL)
	assert.Equal(t, "prod", config.Database)
	assert.Equal(t, "key-1", config.APIKey)

	_, err = LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err)
}
