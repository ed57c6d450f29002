// Package main is the entry point for the verstamp tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/KijinKims/verstamp/model"
	"github.com/KijinKims/verstamp/service/config"
	"github.com/KijinKims/verstamp/service/flag"
	"github.com/KijinKims/verstamp/service/gitinspect"
	"github.com/KijinKims/verstamp/service/header"
	"github.com/KijinKims/verstamp/service/resolver"
	"github.com/KijinKims/verstamp/service/storage"
	"github.com/KijinKims/verstamp/shared/console"
	"github.com/KijinKims/verstamp/shared/spinner"
	stamptable "github.com/KijinKims/verstamp/shared/stamp_table"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db", "history":
			return runStorageCommand(os.Args[1], os.Args[2:])
		}
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return err
	}

	if flags.Version {
		fmt.Printf("verstamp %s (commit %s, built %s)\n", version, commit, date)
		return nil
	}

	cfg, err := config.NewService().Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags = cfg.Apply(flags)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	return stamp(flags, workDir)
}

func stamp(flags model.Flags, workDir string) error {
	inspector := gitinspect.NewService(workDir)
	resolverService := resolver.NewService(inspector, resolver.Policy{Strict: flags.Strict})

	interactive := console.IsInteractive()
	if interactive {
		spinner.StartSpinner()
	}
	descriptor, err := resolverService.Resolve(context.Background(), flags.ModuleName, workDir, flags.Major, flags.Minor)
	if interactive {
		spinner.StopSpinner()
	}
	if err != nil {
		return err
	}

	headerService := header.NewService(flags.OutputPath, flags.UtilityModule, flags.Quiet)
	changed, err := headerService.Write(descriptor)
	if err != nil {
		return err
	}

	if flags.Show {
		stamptable.DrawDescriptorTable(descriptor)
	}

	if flags.Store {
		if err := persistStamp(flags, descriptor, changed); err != nil {
			return fmt.Errorf("failed to store stamp history: %w", err)
		}
	}

	return nil
}

func persistStamp(flags model.Flags, d model.VersionDescriptor, changed bool) error {
	storageService, err := storage.NewService(flags.DBPath)
	if err != nil {
		return err
	}
	defer storageService.Close()

	_, err = storageService.SaveStamp(context.Background(), storage.SaveStampInput{
		ModuleName:     d.ModuleName,
		Label:          d.Label,
		Version:        d.Version,
		Major:          d.Major,
		Minor:          d.Minor,
		Commits:        d.Commits,
		Revision:       d.Revision,
		Hash1:          d.Hash1,
		Hash2:          d.Hash2,
		DirtyState:     d.Dirty,
		SubmoduleCount: len(d.Submodules),
		HeaderPath:     flags.OutputPath,
		HeaderChanged:  changed,
		CLIVersion:     version,
	})
	return err
}
