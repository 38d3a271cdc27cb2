// everseek bridges a launcher to the Everything search engine: it reads
// plugin protocol frames on stdin and answers ranked file matches.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
