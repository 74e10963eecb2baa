package main

import "github.com/mcoot/fatetable/internal/cli"

func main() {
	cli.Execute()
}
