package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bshark-io/bshark/parcel"
)

func newDecodeCmd() *cobra.Command {
	var (
		code     uint32
		iface    string
		asReply  bool
		hexInput bool
	)

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a captured transaction payload",
		Long: `Decode a captured transaction payload against the compiled
definitions in the search path. Incoming transactions identify their
interface through the header descriptor; replies carry none, so
--interface is required together with --reply.`,
		Args: cobra.ExactArgs(1),
	}
	opts := addCommonFlags(cmd)
	cmd.Flags().Uint32Var(&code, "code", 0, "transaction code of the capture")
	cmd.Flags().StringVar(&iface, "interface", "", "qualified name of the binder interface")
	cmd.Flags().BoolVar(&asReply, "reply", false, "treat the payload as a transaction reply")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "input file contains hex digits instead of raw bytes")
	cmd.MarkFlagRequired("code")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := opts.resolve(); err != nil {
			return err
		}
		loader, err := opts.newLoader()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read capture: %w", err)
		}
		if hexInput {
			data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
			if err != nil {
				return fmt.Errorf("decode hex input: %w", err)
			}
		}

		decoder := parcel.NewDecoder(loader, opts.android)

		var tx *parcel.Transaction
		if asReply {
			if iface == "" {
				return fmt.Errorf("--reply requires --interface")
			}
			bdef, err := loader.Binder(iface)
			if err != nil {
				return err
			}
			tx, err = decoder.DecodeReply(bdef, code, data)
			if err != nil {
				return err
			}
		} else {
			msg, err := parcel.ParseIncoming(data, opts.android)
			if err != nil {
				return err
			}
			qname := msg.Descriptor
			if iface != "" {
				qname = iface
			}
			bdef, err := loader.Binder(qname)
			if err != nil {
				return err
			}
			tx, err = decoder.DecodeIncoming(bdef, code, msg.Data)
			if err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return fmt.Errorf("encode transaction: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	return cmd
}
