package server

import (
	"context"

	"github.com/viant/mcp-odoo/odoo"
)

// Options control the bridge process; flags win over environment variables,
// which win over the optional config document.
type Options struct {
	ConfigURL string `short:"c" long:"config" description:"odoo connection config URL (afs supported)"`
	URL       string `short:"u" long:"url" description:"odoo base URL" env:"ODOO_URL"`
	Database  string `short:"d" long:"db" description:"odoo database" env:"ODOO_DB"`
	Username  string `long:"username" description:"odoo login" env:"ODOO_USERNAME"`
	Password  string `long:"password" description:"odoo password" env:"ODOO_PASSWORD"`
	APIKey    string `long:"api-key" description:"odoo api key (bearer strategy)" env:"ODOO_API_KEY"`
	SecretURL string `long:"secret" description:"scy resource with basic odoo credentials" env:"ODOO_SECRET_URL"`
	Lang      string `long:"lang" description:"preferred locale for backend labels" env:"PREFERRED_LANG"`
	Port      int    `short:"p" long:"port" description:"serve streamable HTTP on this port; stdio when unset"`
}

// Config resolves the effective odoo connection config.
func (o *Options) Config(ctx context.Context) (*odoo.Config, error) {
	config := &odoo.Config{}
	if o.ConfigURL != "" {
		loaded, err := odoo.LoadConfig(ctx, o.ConfigURL)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if o.URL != "" {
		config.URL = o.URL
	}
	if o.Database != "" {
		config.Database = o.Database
	}
	if o.Username != "" {
		config.Username = o.Username
	}
	if o.Password != "" {
		config.Password = o.Password
	}
	if o.APIKey != "" {
		config.APIKey = o.APIKey
	}
	if o.SecretURL != "" {
		config.SecretURL = o.SecretURL
	}
	if o.Lang != "" {
		config.PreferredLang = o.Lang
	}
	if config.URL == "" {
		config.URL = "http://localhost:8069"
	}
	if config.Database == "" {
		config.Database = "odoo"
	}
	if err := config.Init(ctx); err != nil {
		return nil, err
	}
	return config, config.Validate()
}
