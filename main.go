package main

import "github.com/corsacca/voice-changer/internal/cli"

func main() {
	cli.Main()
}
