// Command digest prints each user's watchlist quotes, the data behind the daily
// notification email.
//
//	go run ./cmd/digest --email jane@example.com --email joe@example.com
package main

import (
	"os"

	"signalist_backend/cmd/digest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
