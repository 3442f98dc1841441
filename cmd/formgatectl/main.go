package main

import "formgate/internal/cli"

func main() {
	cli.Execute()
}
