// Command derivater is the command-line front end of the derivater engine.
//
// Usage:
//
//	derivater simplify '{"type":"sum","terms":[...]}'
//	derivater derivative --var x --file expr.yaml --format yaml
//	derivater serve --addr :8080
//	derivater mcp
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
