// cmd/rnasim-counts/main.go
package main

import (
	"rnasim/internal/appshell"
	"rnasim/internal/countsapp"
)

func main() {
	appshell.Main(countsapp.RunContext)
}
