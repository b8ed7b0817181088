// Package main is the entry point for the pymut CLI.
package main

import "pymut.dev/pkg/pymut/cmd"

func main() {
	cmd.Execute()
}
