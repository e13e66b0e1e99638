// path: main.go
package main

import "github.com/RodyMacay/biodiversity-monitoring/cmd"

func main() {
	cmd.Execute()
}
