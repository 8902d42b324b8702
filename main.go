package main

import "github.com/dirscout/dirscout/cmd"

func main() {
	cmd.Execute()
}
