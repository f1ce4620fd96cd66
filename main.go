package main

import "github.com/edaskel/questlog/cmd"

func main() {
	cmd.Execute()
}
