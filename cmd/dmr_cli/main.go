package main

import (
	"os"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/config"
)

func main() {
	config.LoadEnv()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
