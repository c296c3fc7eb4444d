package main

import "github.com/kobstaw/kanty-grimoire-backend/cmd/kantctl/root"

func main() {
	root.Execute()
}
