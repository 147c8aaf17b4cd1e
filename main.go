package main

import "windtunnel/cmd"

func main() {
	cmd.Execute()
}
