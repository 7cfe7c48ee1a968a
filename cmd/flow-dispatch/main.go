// Package main provides the entry point for the flow-dispatch CLI.
package main

import "yqhp/flow-dispatch/internal/cli"

func main() {
	cli.Execute()
}
