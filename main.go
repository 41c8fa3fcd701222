package main

import "github.com/KasraF/SnipPyLogTool/cmd"

func main() {
	cmd.Execute()
}
