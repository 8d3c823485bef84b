package main

import (
	"os"

	"github.com/GoWeddingSite/GoWeddingSite/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
