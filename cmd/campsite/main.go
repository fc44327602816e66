package main

import "github.com/example/campsite/cmd"

func main() {
	cmd.Execute()
}
