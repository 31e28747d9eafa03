package main

import "mastodon-sync/cmd"

func main() {
	cmd.Execute()
}
