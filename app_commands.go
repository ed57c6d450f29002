package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/KijinKims/verstamp/service/storage"
	stamptable "github.com/KijinKims/verstamp/shared/stamp_table"
)

func runStorageCommand(cmd string, args []string) error {
	switch cmd {
	case "db":
		return runDBCommand(args)
	case "history":
		return runHistoryCommand(args)
	default:
		return fmt.Errorf("unsupported command: %s", cmd)
	}
}

func runDBCommand(args []string) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 30, "Purge stamps older than N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: verstamp db <vacuum|purge> [--db-path ...]")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub := rest[0]; sub {
	case "vacuum":
		return store.Vacuum(context.Background())
	case "purge":
		count, err := store.PurgeOlderThan(context.Background(), *olderThan)
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d stamps\n", count)
		return nil
	default:
		return fmt.Errorf("unsupported db command: %s", sub)
	}
}

func runHistoryCommand(args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	moduleName := fs.String("module", "", "Module name filter")
	limit := fs.Int("limit", 20, "Number of rows to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: verstamp history <list|show>")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub := rest[0]; sub {
	case "list":
		records, err := store.GetRecentStamps(*moduleName, *limit)
		if err != nil {
			return err
		}
		stamptable.DrawHistoryTable(records)
		return nil
	case "show":
		if len(rest) < 2 {
			return fmt.Errorf("usage: verstamp history show <stamp-id>")
		}
		stampID, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return err
		}
		r, err := store.GetStamp(stampID)
		if err != nil {
			return err
		}
		fmt.Printf("stamp %d\n", r.StampID)
		fmt.Printf("  module:    %s\n", r.ModuleName)
		fmt.Printf("  label:     %s\n", r.Label)
		fmt.Printf("  version:   %s\n", r.Version)
		fmt.Printf("  commits:   %s\n", r.Commits)
		fmt.Printf("  revision:  %d\n", r.Revision)
		fmt.Printf("  hash:      %s\n", r.Hash1)
		fmt.Printf("  oldest:    %s\n", r.Hash2)
		fmt.Printf("  dirty:     %s\n", r.DirtyState)
		fmt.Printf("  header:    %s (changed=%t)\n", r.HeaderPath, r.HeaderChanged)
		fmt.Printf("  stamped:   %s\n", r.StampedAt.Format("2006-01-02 15:04:05"))
		return nil
	default:
		return fmt.Errorf("unsupported history command: %s", sub)
	}
}
