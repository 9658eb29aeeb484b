package main

import "github.com/bloodmagesoftware/arspace/cmd"

func main() {
	cmd.Execute()
}
