// cmd/alncontain/main.go
package main

import (
	"alncontain/internal/app"
	"alncontain/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
