package main

import (
	"log"
	"os"

	_ "github.com/viant/scy/kms/blowfish"

	"github.com/viant/mcp-odoo/server"
)

func main() {
	if err := server.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
