package odoo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
)

const defaultLang = "en_US"

// Config holds the Odoo connection settings; loaded once at startup and
// immutable afterwards. An API key and login/password credentials are
// mutually exclusive authentication strategies - the key wins when both
// are present.
type Config struct {
	URL      string `json:"url" yaml:"url"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	APIKey   string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	//SecretURL locates a scy resource with basic credentials; when set it
	//supersedes inline username/password.
	SecretURL     string `json:"secretURL,omitempty" yaml:"secretURL,omitempty"`
	PreferredLang string `json:"preferredLang,omitempty" yaml:"preferredLang,omitempty"`
}

// Init normalizes the config and resolves secret backed credentials.
func (c *Config) Init(ctx context.Context) error {
	c.URL = strings.TrimRight(c.URL, "/")
	if c.PreferredLang == "" {
		c.PreferredLang = defaultLang
	}
	if c.SecretURL == "" {
		return nil
	}
	secrets := scy.New()
	resource := scy.NewResource(&cred.Basic{}, c.SecretURL, "")
	secret, err := secrets.Load(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to load odoo credentials %v: %w", c.SecretURL, err)
	}
	basic, ok := secret.Target.(*cred.Basic)
	if !ok {
		return fmt.Errorf("invalid odoo credentials type: %T", secret.Target)
	}
	c.Username = basic.Username
	c.Password = basic.Password
	return nil
}

// Validate ensures the config carries an address and one credential strategy.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("odoo url was empty")
	}
	if c.APIKey == "" {
		if c.Database == "" {
			return fmt.Errorf("odoo database was empty")
		}
		if c.Username == "" {
			return fmt.Errorf("odoo credentials were empty: set an api key or username/password")
		}
	}
	return nil
}

// LoadConfig reads a JSON config document from an afs supported URL.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	return config, nil
}
