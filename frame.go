// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

// decoderFrame is the entire working state of one decode call. It is
// created on entry to the public API, mutated in place by the chunk driver
// and LZMA core, and discarded on return; nothing here is heap-allocated
// beyond the struct itself, and a frame must never be shared across
// concurrent calls.
type decoderFrame struct {
	in      []byte
	inPos   int
	inLimit int

	out        []byte
	outPos     int
	outCap     int
	dictOrigin int // output offset of the most recent dictionary reset

	rc rangeCoder

	lc, lp, pb int
	state      int
	rep        [4]uint32

	needProps    bool // true until a property byte is seen; set again by an uncompressed dict-reset chunk
	sawDictReset bool // true once a dictionary reset control byte has run

	probs probModel
}

// reset restores the frame to its just-allocated shape so a pooled frame can
// be reused for an unrelated decode call (see framepool.go).
func (f *decoderFrame) reset() {
	*f = decoderFrame{needProps: true}
}

// posMask returns (1<<pb)-1, used to compute pos_state from the output
// cursor relative to dictOrigin.
func (f *decoderFrame) posMask() int {
	return (1 << uint(f.pb)) - 1
}

// posState is (outcount - dict_origin) mod 2^pb.
func (f *decoderFrame) posState() int {
	return (f.outPos - f.dictOrigin) & f.posMask()
}
