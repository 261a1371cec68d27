// cmd/alnscore/main.go
package main

import (
	"alncontain/internal/appshell"
	"alncontain/internal/scoreapp"
)

func main() {
	appshell.Main(scoreapp.RunContext)
}
