// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package unlzma2 implements a buffer-to-buffer decoder for the LZMA2 container
format used by XZ Utils and 7-Zip.

The decoder is dependency-free, allocates no heap memory beyond the caller's
destination buffer and one working frame, and is a one-shot API: it does not
support streaming a single logical stream across multiple calls. The
dictionary is the output buffer itself, so the largest match distance the
decoder can resolve is bounded by the output buffer's capacity.

# Decode

OutSize is required (the caller's best estimate of the decompressed size, used
to size the destination buffer):

	out, err := unlzma2.Decode(compressed, unlzma2.DefaultOptions(expectedLen))

To reuse a caller-owned buffer instead of allocating:

	dst := make([]byte, expectedLen)
	n, status, err := unlzma2.DecodeInto(compressed, dst)

DecodeStatus exposes the raw five-value status (see Status) along with the
exact number of input and output bytes consumed, for callers that need to
distinguish StatusInLimit (need more input) from StatusOutLimit (need more
output) rather than treating both as a Go error.

# XZ envelope

This package decodes only the raw LZMA2 byte stream. Files wrapped in the XZ
container format (magic FD 37 7A 58 5A 00) must first be stripped down to
their LZMA2 payload; see the sibling package unlzma2/xz.
*/
package unlzma2
