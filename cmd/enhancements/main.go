package main

import "enhancements/cmd/enhancements/cmd"

func main() {
	cmd.Execute()
}
