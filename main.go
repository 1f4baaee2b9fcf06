package main

import "github.com/peekknuf/scikit-ds/cmd"

func main() {
	cmd.Execute()
}
