package main

import "linekeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
