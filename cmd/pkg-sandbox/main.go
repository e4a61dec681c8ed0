package main

import "pkg-sandbox/internal/cli"

func main() {
	cli.Execute()
}
