package main

import (
	"github.com/sambbaron/tuneful/cmd"
)

func main() {
	cmd.Execute()
}
