package main

import "github.com/wundergraph/graphql-ir-compiler/cmd"

func main() {
	cmd.Execute()
}
