// Command tmc compiles a tmc source program into a Turing machine.
package main

import "github.com/funvibe/tmc/pkg/cli"

func main() {
	cli.Run()
}
