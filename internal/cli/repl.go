package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status(ctx context.Context) error
	Persons(ctx context.Context) error
	Pets(ctx context.Context) error
	Households(ctx context.Context) error
	Records(ctx context.Context, profileID string) error
	Documents(ctx context.Context) error
	AddPerson(ctx context.Context, firstName string) error
	AddPet(ctx context.Context, petName string) error
	SetToken(ctx context.Context) error
	LocalOnly(ctx context.Context, on bool) error
	Sync(ctx context.Context, profileID string) error
}

// runREPL starts a read-eval-print loop for the LifeVault shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	status                — data mode and credential summary
//	persons | pets | households
//	records <profile-id>  — list a profile's records
//	docs                  — list vault documents
//	addperson <name>      — create a person profile
//	addpet <name>         — create a pet profile
//	settoken              — store an access token (no echo)
//	local on|off          — toggle local-only mode
//	sync <profile-id>     — push a profile's records to the backend
//	exit | quit
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lifevault %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: status, persons, pets, households, records <id>, docs, addperson <name>, addpet <name>, settoken, local on|off, sync <id>, exit")

		case "status":
			_ = a.Status(ctx)

		case "persons":
			_ = a.Persons(ctx)

		case "pets":
			_ = a.Pets(ctx)

		case "households":
			_ = a.Households(ctx)

		case "records":
			if len(args) == 0 {
				printlnFn("Usage: records <profile-id>")
				continue
			}
			_ = a.Records(ctx, args[0])

		case "docs":
			_ = a.Documents(ctx)

		case "addperson":
			if len(args) == 0 {
				printlnFn("Usage: addperson <first-name>")
				continue
			}
			_ = a.AddPerson(ctx, strings.Join(args, " "))

		case "addpet":
			if len(args) == 0 {
				printlnFn("Usage: addpet <name>")
				continue
			}
			_ = a.AddPet(ctx, strings.Join(args, " "))

		case "settoken":
			_ = a.SetToken(ctx)

		case "local":
			if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
				printlnFn("Usage: local on|off")
				continue
			}
			_ = a.LocalOnly(ctx, args[0] == "on")

		case "sync":
			if len(args) == 0 {
				printlnFn("Usage: sync <profile-id>")
				continue
			}
			_ = a.Sync(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
