package main

import "eprel-mirror/cmd"

func main() {
	cmd.Execute()
}
