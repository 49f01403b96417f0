package main

import "github.com/z0m0dan/taskr/cmd/taskr/root"

func main() {
	root.Execute()
}
