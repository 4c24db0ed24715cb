package main

import "github.com/gatherhub/community/cmd"

func main() {
	cmd.Execute()
}
