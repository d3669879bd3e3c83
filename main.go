package main

import "github.com/requireiot/revheader/cmd"

func main() {
	cmd.Execute()
}
