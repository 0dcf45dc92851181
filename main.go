package main

import "github.com/user/clip-stitch-cli/cmd"

func main() {
	cmd.Execute()
}
