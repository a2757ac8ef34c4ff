package main

import "github.com/railops/rakeplanner/internal/adapters/cli"

func main() {
	cli.Execute()
}
