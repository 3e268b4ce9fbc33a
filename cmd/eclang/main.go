// Command eclang is a small CLI front end over package eclang: it
// compiles EcLang source to the binary form, decompiles the binary
// form back to source, and inspects a file's object tree, all driven
// by one or more --lang YAML bindings (package eclangcfg).
package main

import (
	"fmt"
	"os"

	"github.com/A31Nesta/EcLang/cmd/eclang/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
