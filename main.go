package main

import "fairhuur/cmd"

func main() {
	cmd.Execute()
}
