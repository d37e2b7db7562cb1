package main

import (
	"log"
	"os"

	"filestoprompt/cmd"
	"filestoprompt/pkg/logging"
)

func main() {
	code := cmd.Execute()
	if err := logging.Sync(logging.Logger, os.Stderr); err != nil {
		log.Printf("Logger sync failed: %v", err)
	}
	os.Exit(code)
}
