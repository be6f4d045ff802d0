package main

import "github.com/Itish41/ActionScribe/cli"

func main() {
	cli.Execute()
}
