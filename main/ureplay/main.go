package main

import (
	"github.com/ureplay/ureplay/cmd/ureplay"
)

func main() {
	ureplay.Execute()
}
