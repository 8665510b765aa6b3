package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type decodeFlags struct {
	opcode string
	framed bool
}

func newDecodeCmd() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode an IM payload and print it as YAML",
		Long: `Decode the TLV payload of one Interaction Model message. The opcode is
given by name (ReadRequest, ReportData, ...) or as a number (0x05). With
--framed the input starts with the exchange header, which supplies the
opcode. Whitespace and colons in the hex input are ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(strings.Join(args, ""))
			if err != nil {
				return err
			}
			if flags.framed {
				return runDecodeFrame(cmd.OutOrStdout(), data)
			}
			if flags.opcode == "" {
				return fmt.Errorf("--opcode is required without --framed")
			}
			op, err := parseOpcode(flags.opcode)
			if err != nil {
				return err
			}
			return runDecode(cmd.OutOrStdout(), op, data)
		},
	}

	cmd.Flags().StringVar(&flags.opcode, "opcode", "", "Message opcode, by name or number")
	cmd.Flags().BoolVar(&flags.framed, "framed", false, "Input starts with an exchange header")

	return cmd
}

func runDecode(w io.Writer, op message.Opcode, payload []byte) error {
	msg, err := message.DecodeMessage(op, payload)
	if err != nil {
		return err
	}
	return writeYAML(w, op, msg)
}

func runDecodeFrame(w io.Writer, data []byte) error {
	h, msg, err := message.DecodeFrame(data)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"header": h, h.Opcode.String(): msg}); err != nil {
		return err
	}
	return enc.Close()
}

func parseOpcode(s string) (message.Opcode, error) {
	if op, ok := message.ParseOpcode(s); ok {
		return op, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown opcode %q", s)
	}
	return message.Opcode(n), nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', ':':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return b, nil
}

// writeYAML prints msg as a YAML document keyed by its opcode name.
func writeYAML(w io.Writer, op message.Opcode, msg message.Message) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]message.Message{op.String(): msg}); err != nil {
		return err
	}
	return enc.Close()
}
