package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bshark-io/bshark/definition"
)

var (
	headingColor = color.New(color.Bold)
	kindColor    = color.New(color.FgBlue)
	detailColor  = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <qname>",
		Short: "Show the shape of a compiled definition",
		Args:  cobra.ExactArgs(1),
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

		defs, err := loader.Import(args[0])
		if err != nil {
			return fmt.Errorf("import %q: %w", args[0], err)
		}
		for _, def := range defs {
			printDefinition(def)
		}
		return nil
	}

	return cmd
}

func printDefinition(def definition.Definition) {
	headingColor.Print(def.QualifiedName())
	fmt.Print(" ")
	kindColor.Println(string(def.DefinitionKind()))

	switch d := def.(type) {
	case *definition.BinderDef:
		for _, m := range d.Methods {
			marker := ""
			if m.Oneway {
				marker = warnColor.Sprint(" oneway")
			}
			fmt.Printf("  [%3d]%s %s(%s)\n", m.Code, marker, m.Name, formatArguments(m.Arguments))
		}
	case *definition.ParcelableDef:
		printFields(d.Fields, "  ")
	}
}

func formatArguments(args []definition.ParameterDef) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%s %s", arg.Direction, arg.Name))
	}
	return strings.Join(parts, ", ")
}

func printFields(fields []definition.Field, indent string) {
	for _, f := range fields {
		switch v := f.(type) {
		case definition.FieldDef:
			fmt.Printf("%s%s %s\n", indent, v.Name, detailColor.Sprint(v.Call))
		case *definition.ConditionDef:
			fmt.Printf("%sif %s %s %s\n", indent, detailColor.Sprint(v.Call), v.Op, v.Check)
			printFields(v.Consequence, indent+"  ")
			if len(v.Alternative) > 0 {
				fmt.Printf("%selse\n", indent)
				printFields(v.Alternative, indent+"  ")
			}
		case definition.Stop:
			warnColor.Printf("%sstop\n", indent)
		}
	}
}
