package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bshark-io/bshark/definition"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the compiled definitions in the search path",
	}
	opts := addCommonFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := opts.resolve(); err != nil {
			return err
		}
		loader, err := opts.newLoader()
		if err != nil {
			return err
		}

		for _, root := range loader.SearchPath() {
			err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
				if err != nil || entry.IsDir() || filepath.Ext(path) != definition.ExtJSON {
					return nil
				}
				if _, err := loader.LoadFile(path); err != nil {
					warnColor.Printf("skipping %s: %s\n", path, err)
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", root, err)
			}
		}

		for _, def := range loader.Definitions() {
			fmt.Printf("%s %s\n", kindColor.Sprintf("%-15s", def.DefinitionKind()), def.QualifiedName())
		}
		return nil
	}

	return cmd
}
