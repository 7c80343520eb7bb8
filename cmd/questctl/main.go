package main

import (
	"os"

	"github.com/Skotchmaster/quest_academy/pkg/config"
)

func main() {
	cfg := config.Load()
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
