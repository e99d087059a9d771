package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"realty-crm.backend/pkg/referral"
)

var (
	printfFn       = fmt.Printf
	generateCodeFn = referral.Generate
	fatalfFn       = log.Fatalf
)

func resolveName(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	return "Demo Partner"
}

func main() {
	name := resolveName(os.Args[1:])

	code, err := generateCodeFn(name)
	if err != nil {
		fatalfFn("Failed to generate referral code: %v", err)
	}

	printfFn("Referral code for %s: %s\n", name, code)
}
