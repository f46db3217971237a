package main

import (
	"os"

	"github.com/ragchat/ragchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
