// Command hookdeps checks the dependency arrays of React-style hook calls.
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
