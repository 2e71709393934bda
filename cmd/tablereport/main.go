package main

import "tablereport/internal/cli"

func main() {
	cli.Execute()
}
