package main

import "github.com/mmynk/splitledger/internal/cli"

func main() {
	cli.Execute()
}
