package main

import "github.com/jjtimmons/sdm/cmd"

func main() {
	cmd.Execute() // initialize cobra commands
}
