// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

// Options configures a decode call.
type Options struct {
	// OutSize is the size of the destination buffer Decode should allocate.
	// Required; the decoded stream may end up shorter (the terminator chunk
	// can arrive before the buffer is filled).
	OutSize int
	// MaxInputSize is the longest input DecodeFromReader accepts (0 = no
	// limit); the stream is read in full before its length is checked.
	MaxInputSize int
}

// DefaultOptions returns options with the given output size and no input
// limit.
func DefaultOptions(outSize int) *Options {
	return &Options{OutSize: outSize}
}
