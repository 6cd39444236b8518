package main

import "github.com/zuul-tools/zuul-ls/cmd"

func main() {
	cmd.Execute()
}
