package main

import "library-catalog/cmd/cli"

func main() {
	cli.RunCLI()
}
