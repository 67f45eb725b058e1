package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	bplus "PageKV/bplustree"
	"PageKV/logging"
)

// Usage: go run . [store.kv]
// Without a path the store lives in memory and is lost on exit.
func main() {
	if err := logging.Init(logging.Config{Level: logging.LogLevel(os.Getenv("PAGEKV_LOG_LEVEL"))}); err != nil {
		log.Fatal(err)
	}
	defer logging.Close()

	store, err := openStore(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	scanner := bufio.NewScanner(os.Stdin)
	// REPL
	for {
		fmt.Print("kv> ")

		if !scanner.Scan() { // Ctrl+D pressed
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			break
		}
		if line == "" {
			continue
		}

		if err := execute(store, line); err != nil {
			logging.WithError(err).Debug("command failed", "line", line)
			fmt.Println("Error:", err)
		}
	}
}

func openStore(args []string) (*bplus.Store, error) {
	opts := bplus.DefaultOptions()
	opts.CachePages = 64
	if len(args) == 0 {
		return bplus.OpenInMemory(16*opts.PageSize, opts)
	}
	path := args[0]
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return bplus.Create(path, opts)
	}
	return bplus.Open(path, opts)
}

// execute runs one command: set <key> <value>, get <key>, del <key>,
// scan [from [to]], inspect.
func execute(store *bplus.Store, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "set":
		key, value, ok := strings.Cut(rest, " ")
		if !ok || key == "" {
			return errors.New("usage: set <key> <value>")
		}
		if err := store.Set([]byte(key), []byte(strings.TrimSpace(value))); err != nil {
			return err
		}
		fmt.Println("OK")
	case "get":
		if rest == "" {
			return errors.New("usage: get <key>")
		}
		value, found, err := store.Lookup([]byte(rest))
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("(not found)")
			return nil
		}
		fmt.Println(string(value))
	case "del":
		if rest == "" {
			return errors.New("usage: del <key>")
		}
		if err := store.Delete([]byte(rest)); err != nil {
			return err
		}
		fmt.Println("OK")
	case "scan":
		var from, to []byte
		fields := strings.Fields(rest)
		if len(fields) > 0 {
			from = []byte(fields[0])
		}
		if len(fields) > 1 {
			to = []byte(fields[1])
		}
		n := 0
		err := store.Scan(from, to, func(key, value []byte) error {
			fmt.Printf("%s = %s\n", key, value)
			n++
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("(%d entries)\n", n)
	case "inspect":
		return store.InspectTo(os.Stdout)
	default:
		return fmt.Errorf("unknown command %q (set, get, del, scan, inspect, exit)", cmd)
	}
	return nil
}
