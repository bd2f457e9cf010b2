package main

import (
	"github.com/luxcarwash/luxchat/internal/commands"
)

func main() {
	commands.Execute()
}
