// Command albumlinks serves the album link catalog and browses it from the
// terminal.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
