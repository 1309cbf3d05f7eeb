// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

// LZMA2 control-byte markers.
const (
	ctrlEndOfStream        = 0x00
	ctrlUncompressedReset  = 0x01
	ctrlUncompressedNoRst  = 0x02
	ctrlLZMAReservedMax    = 0x7f
	ctrlLZMAMask           = 0xe0
	modeLZMANoReset        = 0x80
	modeLZMAStateReset     = 0xa0
	modeLZMANewProps       = 0xc0
	modeLZMADictReset      = 0xe0

	maxPropertyByte = (4*5 + 4)*9 + 8 // 224
)

// run drives the chunk loop: repeatedly consume a control byte and dispatch
// to an uncompressed copy or an LZMA chunk, until an end-of-stream control
// byte, an error, or input/output exhaustion.
func (f *decoderFrame) run() (Status, error) {
	for {
		c, ok := f.nextByte()
		if !ok {
			return StatusInLimit, nil
		}

		switch {
		case c == ctrlEndOfStream:
			return StatusOK, nil

		case c == ctrlUncompressedReset || c == ctrlUncompressedNoRst:
			if status, done, err := f.runUncompressedChunk(c == ctrlUncompressedReset); err != nil || done {
				return status, err
			}

		case c <= ctrlLZMAReservedMax:
			return StatusDataError, nil

		default:
			if status, done, err := f.runLZMAChunk(c); err != nil || done {
				return status, err
			}
		}
	}
}

// nextByte consumes one input byte, reporting false if none remains.
func (f *decoderFrame) nextByte() (byte, bool) {
	if f.inPos >= f.inLimit {
		return 0, false
	}
	b := f.in[f.inPos]
	f.inPos++
	return b, true
}

// nextU16BE consumes a big-endian uint16, reporting false if unavailable.
func (f *decoderFrame) nextU16BE() (int, bool) {
	if f.inPos+2 > f.inLimit {
		return 0, false
	}
	v := int(f.in[f.inPos])<<8 | int(f.in[f.inPos+1])
	f.inPos += 2
	return v, true
}

// runUncompressedChunk handles control bytes 0x01/0x02: a literal byte run
// copied directly from input to output, optionally preceded by a dictionary
// reset. The bool return reports whether the caller should stop entirely
// (true) or keep reading chunks (false).
func (f *decoderFrame) runUncompressedChunk(reset bool) (Status, bool, error) {
	if reset {
		f.dictOrigin = f.outPos
		f.needProps = true
		f.sawDictReset = true
	} else if !f.sawDictReset {
		return StatusDataError, true, nil
	}

	lenField, ok := f.nextU16BE()
	if !ok {
		return StatusInLimit, true, nil
	}
	copyLen := lenField + 1

	availIn := f.inLimit - f.inPos
	availOut := f.outCap - f.outPos

	n := copyLen
	limitIn, limitOut := false, false
	if n > availIn {
		n = availIn
		limitIn = true
	}
	if n > availOut {
		n = availOut
		limitOut = true
		limitIn = false
	}

	if n > 0 {
		copy(f.out[f.outPos:f.outPos+n], f.in[f.inPos:f.inPos+n])
		f.inPos += n
		f.outPos += n
	}

	if limitOut {
		return StatusOutLimit, true, nil
	}
	if limitIn {
		return StatusInLimit, true, nil
	}
	return StatusOK, false, nil
}

// runLZMAChunk handles control bytes 0x80..0xff: parses the chunk header,
// applies the requested resets, primes the range coder, and runs the LZMA
// core over the chunk's declared output range.
func (f *decoderFrame) runLZMAChunk(c byte) (Status, bool, error) {
	mode := c & ctrlLZMAMask

	if (mode == modeLZMANoReset || mode == modeLZMAStateReset) && f.needProps {
		return StatusDataError, true, nil
	}

	uncompressedHi := int(c & 0x1f)
	uncompressedLo, ok := f.nextU16BE()
	if !ok {
		return StatusInLimit, true, nil
	}
	uncompressedSize := (uncompressedHi<<16 | uncompressedLo) + 1

	compressedLo, ok := f.nextU16BE()
	if !ok {
		return StatusInLimit, true, nil
	}
	compressedSize := compressedLo + 1

	if mode == modeLZMANewProps || mode == modeLZMADictReset {
		p, ok := f.nextByte()
		if !ok {
			return StatusInLimit, true, nil
		}
		if int(p) > maxPropertyByte {
			return StatusDataError, true, nil
		}
		f.pb = int(p) / 45
		f.lp = (int(p) % 45) / 9
		f.lc = int(p) % 9
		if f.lc+f.lp > 4 {
			return StatusDataError, true, nil
		}
		f.needProps = false
	}

	if mode == modeLZMADictReset {
		f.dictOrigin = f.outPos
		f.sawDictReset = true
	}

	if mode != modeLZMANoReset {
		f.state = 0
		f.rep = [4]uint32{}
		f.probs.reset()
	}

	if compressedSize < 5 {
		return StatusDataError, true, nil
	}

	rcLimit := f.inPos + compressedSize
	if rcLimit > f.inLimit {
		rcLimit = f.inLimit
	}
	f.rc.limit = rcLimit
	if err := f.rc.init(f.in, &f.inPos); err != nil {
		return StatusInLimit, true, nil
	}

	declaredEnd := f.outPos + uncompressedSize
	outLimit := declaredEnd
	truncatedByCap := false
	if outLimit > f.outCap {
		outLimit = f.outCap
		truncatedByCap = true
	}

	err := f.decodeSymbols(outLimit, truncatedByCap)
	switch err {
	case nil:
		if f.outPos == declaredEnd {
			if f.inPos != f.rc.limit {
				return StatusDataError, true, nil
			}
			return StatusOK, false, nil
		}
		// outLimit was bound by outCap and we reached it exactly.
		return StatusOutLimit, true, nil
	case errRangeLimit:
		if f.rc.limit < f.inLimit {
			// More input exists, but the chunk's declared compressed size
			// ran out before its output did.
			return StatusDataError, true, nil
		}
		return StatusInLimit, true, nil
	case errOutOfCap:
		return StatusOutLimit, true, nil
	default:
		return StatusDataError, true, nil
	}
}
