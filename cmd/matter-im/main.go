// matter-im inspects Matter Interaction Model traffic.
//
// Usage:
//
//	matter-im decode --opcode ReportData 1536...
//	matter-im read --path '*/0x0006/0x0000' --lights 3
//
// decode prints a TLV payload as YAML. read serves the request from an
// in-process device with a number of On/Off Light endpoints and prints every
// ReportData chunk the engine produces.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pion/logging"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel string
}

func main() {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "matter-im",
		Short:         "Matter Interaction Model inspection tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level: disabled, error, warn, info, debug, trace")

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newReadCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var logLevels = map[string]logging.LogLevel{
	"disabled": logging.LogLevelDisabled,
	"error":    logging.LogLevelError,
	"warn":     logging.LogLevelWarn,
	"info":     logging.LogLevelInfo,
	"debug":    logging.LogLevelDebug,
	"trace":    logging.LogLevelTrace,
}

// loggerFactory builds a pion logger factory writing to stderr.
func (f *rootFlags) loggerFactory() (logging.LoggerFactory, error) {
	level, ok := logLevels[strings.ToLower(f.logLevel)]
	if !ok {
		return nil, fmt.Errorf("invalid log-level %q", f.logLevel)
	}
	lf := logging.NewDefaultLoggerFactory()
	lf.DefaultLogLevel = level
	lf.Writer = os.Stderr
	return lf, nil
}
