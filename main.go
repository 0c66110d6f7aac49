package main

import (
	"log"

	"github.com/thiagokokada/linelog-go/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("linelog-go: %v", err)
	}
}
