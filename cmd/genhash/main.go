// cmd/genhash prints a bcrypt hash for a password, for operators who need to
// fix a credential directly in the database.
// Uso: go run ./cmd/genhash [-cost 12] <senha>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"seguradora/internal/service"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	senha := flag.Arg(0)
	if senha == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "uso: genhash [-cost N] <senha>")
			os.Exit(2)
		}
		senha = strings.TrimRight(line, "\r\n")
	}

	h, err := service.HashPassword(senha, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(h)
}
