// Package main is the entry point for the hoopsmetrics CLI tool, which
// ingests basketball box scores and computes player performance analytics.
package main

import "github.com/pable/go-hoops-metrics/cmd"

func main() {
	cmd.Execute()
}
