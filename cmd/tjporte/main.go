package main

import "github.com/ppiankov/tjporte/internal/cli"

func main() {
	cli.Execute()
}
