// Command flatctl operates a local-first flatshare store.
package main

import "github.com/mesh-intelligence/flatshare/internal/cli"

func main() {
	cli.Execute()
}
