package main

import "github.com/user/flipbook-cli/cmd"

func main() {
	cmd.Execute()
}
