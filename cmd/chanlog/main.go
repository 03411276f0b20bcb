// Command chanlog exercises the facade over any of the supported engines:
// it prints the level table, emits messages, shows the effective
// configuration and decodes CBOR captures.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chanlog:", err)
		os.Exit(1)
	}
}
