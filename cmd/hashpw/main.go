// Command hashpw prints a bcrypt hash for the given password, suitable for
// the ADMIN_PASSWORD_HASH environment variable.
package main

import (
	"fmt"
	"os"

	"souveno-backend/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
