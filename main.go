package main

import "github.com/jsembed/js2c/cmd"

func main() {
	cmd.Execute()
}
