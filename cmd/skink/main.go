// Command skink inspects documents through the skink runtime: it loads JSON
// or YAML data into an object tree and exposes the runtime's reflective
// operations over it.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emmelopod/skink"
)

var (
	inputFormat string
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skink",
	Short: "Inspect documents through the skink object runtime",
	Long: `skink loads a JSON or YAML document into an object tree and exposes the
runtime's reflective operations over it: shape and class inspection, canonical
checksums, deep comparison, and re-serialization.

Documents are read from the named file, or from standard input when the file
is "-". The input format follows the file extension unless --input overrides
it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		skink.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize a document's shape, class, ancestry, and checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := skink.NewRuntime()
		o, err := loadDocument(rt, args[0])
		if err != nil {
			return err
		}
		m := rt.Meta(o)
		c, err := m.Class()
		if err != nil {
			return err
		}
		lin, err := m.LinearISA()
		if err != nil {
			return err
		}
		names := make([]string, len(lin))
		for i, k := range lin {
			names[i] = k.Name()
		}
		methods, err := m.Methods(skink.MethodOpts{})
		if err != nil {
			return err
		}
		sum, err := m.Checksum(skink.ChecksumOpts{})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "reftype:    %v\n", m.RefType())
		fmt.Fprintf(out, "class:      %s\n", c.Name())
		fmt.Fprintf(out, "linear isa: %s\n", strings.Join(names, " "))
		fmt.Fprintf(out, "methods:    %s\n", strings.Join(methods, " "))
		fmt.Fprintf(out, "checksum:   %s\n", sum)
		return nil
	},
}

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Re-serialize a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := skink.NewRuntime()
		o, err := loadDocument(rt, args[0])
		if err != nil {
			return err
		}
		var format skink.DumpFormat
		switch dumpFormat {
		case "perl":
			format = skink.FormatPerl
		case "json":
			format = skink.FormatJSON
		case "yaml":
			format = skink.FormatYAML
		default:
			return fmt.Errorf("unknown dump format %q", dumpFormat)
		}
		s, err := rt.Meta(o).Dump(skink.DumpOpts{Format: format})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(s, "\n"))
		return nil
	},
}

var (
	checksumAlgorithm string
	checksumDigest    string
)

var checksumCmd = &cobra.Command{
	Use:   "checksum FILE",
	Short: "Print a document's canonical checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := skink.NewRuntime()
		o, err := loadDocument(rt, args[0])
		if err != nil {
			return err
		}
		var opts skink.ChecksumOpts
		switch checksumAlgorithm {
		case "sha1":
			opts.Algorithm = skink.SHA1
		case "md5":
			opts.Algorithm = skink.MD5
		default:
			return fmt.Errorf("unknown checksum algorithm %q", checksumAlgorithm)
		}
		switch checksumDigest {
		case "hex":
			opts.Format = skink.Hex
		case "base64":
			opts.Format = skink.Base64
		case "binary":
			opts.Format = skink.Binary
		default:
			return fmt.Errorf("unknown digest format %q", checksumDigest)
		}
		sum, err := rt.Meta(o).Checksum(opts)
		if err != nil {
			return err
		}
		if opts.Format == skink.Binary {
			_, err = cmd.OutOrStdout().Write([]byte(sum))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sum)
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff FILE1 FILE2",
	Short: "Deep-compare two documents; exit status 1 when they differ",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := skink.NewRuntime()
		a, err := loadDocument(rt, args[0])
		if err != nil {
			return err
		}
		b, err := loadDocument(rt, args[1])
		if err != nil {
			return err
		}
		eq, err := rt.Meta(a).IsEqual(b)
		if err != nil {
			return err
		}
		if !eq {
			fmt.Fprintln(cmd.OutOrStdout(), "documents differ")
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "documents are equal")
		return nil
	},
}

// loadDocument reads a JSON or YAML document from path, or from stdin when
// path is "-", and ingests it into rt.
func loadDocument(rt *skink.Runtime, path string) (*skink.Object, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	format := inputFormat
	if format == "" {
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json":
		return rt.DecodeJSON(data)
	case "yaml":
		return rt.DecodeYAML(data)
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&inputFormat, "input", "", "input format (json or yaml; default by file extension)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "perl", "output format (perl, json, or yaml)")
	checksumCmd.Flags().StringVar(&checksumAlgorithm, "algorithm", "sha1", "digest algorithm (sha1 or md5)")
	checksumCmd.Flags().StringVar(&checksumDigest, "digest", "hex", "digest encoding (hex, base64, or binary)")
	rootCmd.AddCommand(inspectCmd, dumpCmd, checksumCmd, diffCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
