// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

// Range coder constants.
const (
	rcTopValue       = 1 << 24
	rcBitModelTotal  = 1 << 11
	rcNumMoveBits    = 5
	rcInitByteCount  = 5 // first byte discarded, next four big-endian into code
)

// rangeCoder is pure state: it never owns the input slice, only a cursor
// into the frame that embeds it. Every decode operation normalizes first,
// then either returns a decoded value or propagates errRangeLimit so deep
// call chains (length decode -> bit tree -> decode bit) can bail out with a
// single early-return chain.
type rangeCoder struct {
	rng     uint32
	code    uint32
	limit   int // byte offset in the shared input at which this chunk ends
}

// normalize keeps rng >= 2^24, pulling one byte from
// in[*pos:] when it doesn't. Returns errRangeLimit if *pos has reached limit
// with no byte available; the caller decides whether that means InLimit or
// DataError.
func (rc *rangeCoder) normalize(in []byte, pos *int) error {
	if rc.rng < rcTopValue {
		if *pos >= rc.limit {
			return errRangeLimit
		}
		rc.rng <<= 8
		rc.code = (rc.code << 8) | uint32(in[*pos])
		*pos++
	}
	return nil
}

// init consumes the 5 range-coder init bytes at in[*pos:]: the
// first is discarded, the next four are read big-endian into code, and rng
// is reset to its maximum value.
func (rc *rangeCoder) init(in []byte, pos *int) error {
	if *pos+rcInitByteCount > rc.limit {
		return errRangeLimit
	}
	*pos++ // discard
	rc.code = uint32(in[*pos])<<24 | uint32(in[*pos+1])<<16 | uint32(in[*pos+2])<<8 | uint32(in[*pos+3])
	*pos += 4
	rc.rng = 0xFFFFFFFF
	return nil
}

// decodeBit decodes one bit under probability *p, adapting *p by 1/32 of its
// distance to the extremum toward the observed outcome.
func (rc *rangeCoder) decodeBit(in []byte, pos *int, p *uint16) (uint32, error) {
	if err := rc.normalize(in, pos); err != nil {
		return 0, err
	}
	bound := (rc.rng >> 11) * uint32(*p)
	if rc.code < bound {
		rc.rng = bound
		*p += (rcBitModelTotal - *p) >> rcNumMoveBits
		return 0, nil
	}
	rc.rng -= bound
	rc.code -= bound
	*p -= *p >> rcNumMoveBits
	return 1, nil
}

// decodeBitTree decodes a fixed-width forward bit tree, most-significant bit
// first, returning the walked index with its leading 1 intact (i.e. in
// [1<<numBits, 1<<(numBits+1))).
func (rc *rangeCoder) decodeBitTree(in []byte, pos *int, probs []uint16, numBits int) (uint32, error) {
	m := uint32(1)
	for i := 0; i < numBits; i++ {
		bit, err := rc.decodeBit(in, pos, &probs[m])
		if err != nil {
			return 0, err
		}
		m = (m << 1) | bit
	}
	return m, nil
}

// decodeBitTreeReverse decodes the same shape of tree but least-significant
// bit first into a running value, used for dist_special and dist_align.
func (rc *rangeCoder) decodeBitTreeReverse(in []byte, pos *int, probs []uint16, offset, numBits int) (uint32, error) {
	m := uint32(1)
	var sym uint32
	for i := 0; i < numBits; i++ {
		bit, err := rc.decodeBit(in, pos, &probs[offset+int(m)])
		if err != nil {
			return 0, err
		}
		m = (m << 1) | bit
		sym |= bit << uint(i)
	}
	return sym, nil
}

// decodeDirectBits decodes n equiprobable bits by repeatedly halving rng and
// inspecting code's sign after subtraction.
func (rc *rangeCoder) decodeDirectBits(in []byte, pos *int, n int) (uint32, error) {
	var res uint32
	for ; n > 0; n-- {
		if err := rc.normalize(in, pos); err != nil {
			return 0, err
		}
		rc.rng >>= 1
		rc.code -= rc.rng
		t := 0 - (rc.code >> 31)
		rc.code += rc.rng & t
		res = (res << 1) + (t + 1)
	}
	return res, nil
}
