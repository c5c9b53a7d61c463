package main

import (
	"github.com/ColonelBlimp/humanpanic/cmd"
	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
)

func main() {
	defer humanpanic.Recover()
	cmd.Execute()
}
