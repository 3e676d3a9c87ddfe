package main

import "bms/internal/cli"

func main() {
	cli.Execute()
}
