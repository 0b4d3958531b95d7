package main

import "fileshare/internal/delivery/cli"

func main() {
	cli.Execute()
}
