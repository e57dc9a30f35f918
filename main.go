package main

import "github.com/kasa-ledger/kasa/cmd"

func main() {
	cmd.Execute()
}
