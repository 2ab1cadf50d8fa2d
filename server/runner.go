package server

import (
	"context"
	"fmt"
	"log"

	"github.com/jessevdk/go-flags"

	"github.com/viant/mcp-odoo/odoo"
	"github.com/viant/mcp-odoo/toolset"
)

// Run parses options, wires the odoo client and serves the bridge over
// stdio, or streamable HTTP when a port is set.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx := context.Background()
	config, err := options.Config(ctx)
	if err != nil {
		return err
	}
	client := odoo.New(config)
	// The initial authenticate is best effort: the bridge still serves so
	// that odoo_reconnect can recover once the backend is reachable.
	if err = client.Authenticate(ctx); err != nil {
		log.Printf("[WARN] odoo not available: %v - use odoo_reconnect", err)
	} else if uid := client.UID(); uid != nil {
		log.Printf("connected to odoo as uid=%v", *uid)
	}

	srv, err := New(ctx, toolset.New(odoo.NewService(client)))
	if err != nil {
		return err
	}
	if options.Port > 0 {
		srv.UseStreamableHTTP(true)
		return srv.HTTP(ctx, fmt.Sprintf(":%v", options.Port)).ListenAndServe()
	}
	return srv.Stdio(ctx).ListenAndServe()
}
