// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package unlzma2

import "io"

// Decode decompresses an LZMA2 stream from src into a freshly allocated
// buffer of length opts.OutSize. Returns ErrOptionsRequired if opts is nil;
// ErrEmptyInput if src is empty. On success the returned slice may be
// shorter than OutSize if the stream's end-of-stream chunk arrived early.
func Decode(src []byte, opts *Options) ([]byte, error) {
	if opts == nil {
		return nil, ErrOptionsRequired
	}
	if opts.OutSize < 0 {
		return nil, ErrOptionsRequired
	}
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	dst := make([]byte, opts.OutSize)
	n, _, status, err := decodeCore(src, dst)
	if err != nil {
		return nil, err
	}
	if status != StatusOK {
		return nil, errForStatus(status)
	}
	return dst[:n], nil
}

// DecodeInto decompresses src into the caller-supplied dst, without
// allocating a destination buffer. It returns the number of bytes produced,
// the raw status (so a caller can distinguish StatusOutLimit from a genuine
// error), and a non-nil error whenever status is not StatusOK.
func DecodeInto(src []byte, dst []byte) (produced int, status Status, err error) {
	if len(src) == 0 {
		return 0, StatusDataError, ErrEmptyInput
	}
	n, _, status, err := decodeCore(src, dst)
	return n, status, err
}

// DecodeStatus is the bare entry point: decode(inbuf, outbuf) -> (status,
// consumed_in, produced_out). Unlike Decode/DecodeInto it never wraps the
// status in a Go error — callers that want the raw status alongside both
// cursors should use this.
func DecodeStatus(src []byte, dst []byte) (status Status, consumedIn int, producedOut int) {
	producedOut, consumedIn, status, _ = decodeCore(src, dst)
	return status, consumedIn, producedOut
}

// DecodeFromReader reads the full stream then calls Decode with opts, which
// decodes into a buffer of opts.OutSize bytes. No decoding logic of its own.
// If opts.MaxInputSize > 0 and more bytes are read, returns ErrInputTooLarge.
func DecodeFromReader(r io.Reader, opts *Options) ([]byte, error) {
	if opts == nil {
		return nil, ErrOptionsRequired
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, ErrInputTooLarge
	}

	return Decode(src, opts)
}

// decodeCore wraps one decode call in a pooled frame and always reports the
// cursor positions reached, even on error.
func decodeCore(src, dst []byte) (produced, consumed int, status Status, err error) {
	f := acquireFrame()
	defer releaseFrame(f)

	f.in = src
	f.inLimit = len(src)
	f.out = dst
	f.outCap = len(dst)

	status, runErr := f.run()
	produced, consumed = f.outPos, f.inPos

	if runErr != nil {
		// run() only returns a non-nil error for conditions outside the
		// five-status contract (none currently); kept so cursors are always
		// reported back even if that ever changes.
		return produced, consumed, status, runErr
	}
	return produced, consumed, status, errForStatus(status)
}
