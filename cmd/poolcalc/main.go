package main

import (
	"github.com/Zen-Maxi/balancer-sdk/internal/cli"
)

// main is the entry point for the poolcalc CLI.
func main() {
	cli.Execute()
}
