// cmd/rnasim/main.go
package main

import (
	"rnasim/internal/app"
	"rnasim/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
