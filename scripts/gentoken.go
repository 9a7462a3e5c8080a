package main

import (
	"fmt"
	"os"

	"devconnector-backend/pkg/token"
)

// Mints a bearer token for a user id, for exercising protected endpoints
// locally: go run scripts/gentoken.go <user-id>
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gentoken <user-id>")
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	svc := token.NewService(secret, token.DefaultTTL)
	signed, err := svc.Issue(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
