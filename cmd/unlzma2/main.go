// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

// Command unlzma2 is the LZMA2/XZ decoder test bench: it
// reads a file or stdin, auto-detects (or is told) whether it's wrapped in
// an XZ envelope, decodes it, and writes the plaintext to stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/woozymasta/unlzma2"
	"github.com/woozymasta/unlzma2/xz"
)

// Exit codes.
const (
	exitOK          = 0
	exitDecodeError = 1
	exitBadUsage    = 2
	exitCorrupted   = 3
)

var (
	verbosity    int
	forceRaw     bool
	requireXZ    bool
	requireCRC32 bool
	bufSizeFlag  string
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if usageErr, ok := err.(*usageError); ok {
			fmt.Fprintln(os.Stderr, "unlzma2:", usageErr.Error())
			return exitBadUsage
		}
		fmt.Fprintln(os.Stderr, "unlzma2:", err)
		if exitCode != exitOK {
			return exitCode
		}
		return exitDecodeError
	}
	return exitCode
}

// exitCode is set by runDecode once it has a final outcome; cobra's
// RunE signature doesn't carry our three-way exit status directly.
var exitCode = exitOK

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unlzma2 [FILE|-]",
		Short:         "Decode a raw LZMA2 stream or an XZ-wrapped one",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args)
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	cmd.Flags().BoolVarP(&forceRaw, "raw", "r", false, "treat input as raw LZMA2, skip XZ auto-detection")
	cmd.Flags().BoolVarP(&requireXZ, "xz", "x", false, "require an XZ envelope")
	cmd.Flags().BoolVarP(&requireCRC32, "check-crc32", "c", false, "require the XZ envelope to carry a CRC32 check")
	cmd.Flags().StringVarP(&bufSizeFlag, "bufsize", "b", "", "output buffer size, e.g. 64K, 4M, 1G (default 4x input size)")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	setupLogger(verbosity)

	if forceRaw && requireXZ {
		exitCode = exitBadUsage
		return &usageError{msg: "-r and -x are mutually exclusive"}
	}

	var in []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		in, err = io.ReadAll(os.Stdin)
	} else {
		in, err = os.ReadFile(args[0])
	}
	if err != nil {
		exitCode = exitDecodeError
		return err
	}

	log.Debug().Int("input_bytes", len(in)).Msg("read input")

	payload := in
	var checkField []byte
	var info xz.Info
	isXZ := !forceRaw && xz.IsXZStream(in)

	if requireXZ && !isXZ {
		exitCode = exitDecodeError
		return fmt.Errorf("input is not an XZ stream")
	}

	if isXZ {
		payload, checkField, info, err = xz.Strip(in, &xz.Options{RequireCheckType: requireCRC32})
		if err != nil {
			exitCode = exitDecodeError
			return fmt.Errorf("xz envelope: %w", err)
		}
		log.Debug().Str("check_type", fmt.Sprint(info.CheckType)).Msg("stripped XZ envelope")
	}

	outSize := len(in) * 4
	if bufSizeFlag != "" {
		outSize, err = parseSize(bufSizeFlag)
		if err != nil {
			exitCode = exitBadUsage
			return &usageError{msg: err.Error()}
		}
	}

	out := make([]byte, outSize)
	status, consumedIn, produced := unlzma2.DecodeStatus(payload, out)
	if consumedIn > len(payload) || produced > len(out) {
		// Guards against a decoder bug moving cursors past sane bounds;
		// treated as fatal regardless of the reported status.
		exitCode = exitCorrupted
		return fmt.Errorf("decoder cursors moved past buffer bounds")
	}

	switch status {
	case unlzma2.StatusOK:
		// fall through to the CRC32 check below
	case unlzma2.StatusOutLimit:
		log.Warn().Msg("output buffer too small, truncated")
		exitCode = exitDecodeError
		return fmt.Errorf("output buffer too small")
	default:
		exitCode = exitDecodeError
		return fmt.Errorf("decode failed: status=%v", status)
	}

	if isXZ && info.CheckType == xz.CheckCRC32 {
		if verr := xz.VerifyCRC32(payload, consumedIn, checkField, out[:produced]); verr != nil {
			exitCode = exitDecodeError
			return fmt.Errorf("integrity check: %w", verr)
		}
	}

	if _, err := os.Stdout.Write(out[:produced]); err != nil {
		exitCode = exitDecodeError
		return err
	}

	exitCode = exitOK
	return nil
}

func setupLogger(v int) {
	level := zerolog.WarnLevel
	switch {
	case v >= 2:
		level = zerolog.TraceLevel
	case v == 1:
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

// parseSize parses a size string like "64K", "4M", "1G" or a bare byte
// count, matching -b SIZE[K|M|G].
func parseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}
	mult := 1
	switch suffix := s[len(s)-1]; suffix {
	case 'k', 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * mult, nil
}
