package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bshark-io/bshark/agent"
	"github.com/bshark-io/bshark/definition"
	"github.com/bshark-io/bshark/parcel"
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <capture>",
		Short: "Decode a capture stream record by record",
		Long: `Decode a capture stream record by record. The capture argument is
a file path, "-" for stdin, or "tcp:host:port" for a forwarded capture
socket.`,
		Args: cobra.ExactArgs(1),
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

		src, err := openCapture(args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		listener := &printingListener{
			loader:  loader,
			decoder: parcel.NewDecoder(loader, opts.android),
			android: opts.android,
			out:     cmd.OutOrStdout(),
		}
		a := agent.New(listener)
		a.Attach(src)
		return a.Wait()
	}

	return cmd
}

func openCapture(target string) (io.ReadCloser, error) {
	switch {
	case target == "-":
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(target, "tcp:"):
		conn, err := net.Dial("tcp", strings.TrimPrefix(target, "tcp:"))
		if err != nil {
			return nil, fmt.Errorf("connect capture socket: %w", err)
		}
		return conn, nil
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	return f, nil
}

// printingListener decodes every record it receives and writes one
// JSON document per transaction.
type printingListener struct {
	loader  *definition.Loader
	decoder *parcel.Decoder
	android int
	out     io.Writer
}

func (l *printingListener) OnTransaction(code uint32, data []byte) {
	msg, err := parcel.ParseIncoming(data, l.android)
	if err != nil {
		warnColor.Fprintf(l.out, "transaction %d: %s\n", code, err)
		return
	}
	bdef, err := l.loader.Binder(msg.Descriptor)
	if err != nil {
		warnColor.Fprintf(l.out, "transaction %d: %s\n", code, err)
		return
	}
	l.print(l.decoder.DecodeIncoming(bdef, code, msg.Data))
}

func (l *printingListener) OnReply(code uint32, descriptor string, data []byte) {
	bdef, err := l.loader.Binder(descriptor)
	if err != nil {
		warnColor.Fprintf(l.out, "reply %d: %s\n", code, err)
		return
	}
	l.print(l.decoder.DecodeReply(bdef, code, data))
}

func (l *printingListener) print(tx *parcel.Transaction, err error) {
	if err != nil {
		warnColor.Fprintf(l.out, "%s\n", err)
		if tx == nil {
			return
		}
		// fall through and show what decoded before the failure
	}
	doc, err := json.Marshal(tx)
	if err != nil {
		warnColor.Fprintf(l.out, "encode transaction: %s\n", err)
		return
	}
	fmt.Fprintln(l.out, string(doc))
}
