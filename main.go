package main

import "github.com/yz4230/repowatch/cmd"

func main() {
	cmd.Execute()
}
