package main

import (
	"log"

	"github.com/spigell/interview-feedback/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
