// Command valguard is the command-line interface to the valguard library.
package main

import "github.com/mesh-intelligence/valguard/internal/cli"

func main() {
	cli.Execute()
}
