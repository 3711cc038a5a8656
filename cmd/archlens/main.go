package main

import "archlens/internal/cli"

func main() {
	cli.Execute()
}
