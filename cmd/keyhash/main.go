// Command keyhash generates an admin API key and the bcrypt hash to put in
// ADMIN_API_KEY_HASH.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/delcom/catalog/internal/auth"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	if *cost < bcrypt.MinCost || *cost > bcrypt.MaxCost {
		fmt.Fprintf(os.Stderr, "cost must be between %d and %d\n", bcrypt.MinCost, bcrypt.MaxCost)
		os.Exit(2)
	}

	rawKey, hash, err := auth.GenerateKey(*cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("API key (send as X-API-Key): %s\n", rawKey)
	fmt.Printf("ADMIN_API_KEY_HASH=%s\n", hash)
}
