// Command regionrank ranks regions by average order value from CSV files and
// cleans raw landing files offline, without a database.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
