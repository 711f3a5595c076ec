package main

import "watchlist/cmd"

func main() {
	cmd.Execute()
}
