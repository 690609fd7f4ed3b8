package main

import (
	"github.com/hormigadev/hormiga/cmd"
)

func main() {
	cmd.Execute()
}
