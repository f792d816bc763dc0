package main

import (
	"geoplot/internal/cli"
)

var version = "dev"

func main() {
	cli.Execute(version)
}
