package main

import (
	"log"

	"github.com/jobscout-kr/jobscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
