// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

// LZMA state numbering: states 0..6 recorded a literal most
// recently, so "state < 7" is the test used throughout for "was the last
// event a literal".
const (
	stLitLit = iota
	stMatchLitLit
	stRepLitLit
	stShortRepLitLit
	stMatchLit
	stRepLit
	stShortRepLit
	stLitMatch
	stLitLongRep
	stLitShortRep
	stNonLitMatch
	stNonLitRep
)

func updateStateLiteral(state int) int {
	switch {
	case state < 4:
		return 0
	case state < 10:
		return state - 3
	default:
		return state - 6
	}
}

func updateStateMatch(state int) int {
	if state < 7 {
		return stLitMatch
	}
	return stNonLitMatch
}

func updateStateRep(state int) int {
	if state < 7 {
		return stLitLongRep
	}
	return stNonLitRep
}

func updateStateShortRep(state int) int {
	if state < 7 {
		return stLitShortRep
	}
	return stNonLitRep
}

// decodeLiteral decodes one literal byte. When the
// previous event was a match or rep (state >= 7), the literal is decoded
// against the byte the current rep[0] distance references, using the
// match-bit trick: as long as decoded bits keep agreeing with the
// referenced byte, the coder uses entries 0x100..0x2ff of the 0x300-wide
// literal table (split by the match bit); the first disagreement drops it to
// the plain entries below 0x100 for the remaining bits.
func (f *decoderFrame) decodeLiteral() (byte, error) {
	var prevByte byte
	if f.outPos > f.dictOrigin {
		prevByte = f.out[f.outPos-1]
	}

	i := (((f.outPos - f.dictOrigin) & ((1 << uint(f.lp)) - 1)) << uint(f.lc)) |
		int(prevByte>>(8-uint(f.lc)))
	probs := f.probs.literal[i][:]

	symbol := uint32(1)
	if f.state >= 7 {
		if f.outPos-f.dictOrigin <= int(f.rep[0]) {
			return 0, errDataError
		}
		m := uint32(f.out[f.outPos-int(f.rep[0])-1])
		for {
			matchBit := (m >> 7) & 1
			m <<= 1
			idx := ((1 + matchBit) << 8) | symbol
			bit, err := f.rc.decodeBit(f.in, &f.inPos, &probs[idx])
			if err != nil {
				return 0, err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				break
			}
			if symbol >= 0x100 {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit, err := f.rc.decodeBit(f.in, &f.inPos, &probs[symbol])
		if err != nil {
			return 0, err
		}
		symbol = (symbol << 1) | bit
	}
	return byte(symbol), nil
}

// decodeDistance decodes a match distance given the just-decoded length: a
// 6-bit slot selects the bit width, slots 0..3 are the distance directly,
// slots 4..13 add tree-decoded extra bits, and slots 14+ add direct bits
// above four align bits.
func (f *decoderFrame) decodeDistance(length int) (uint32, error) {
	lenState := length - matchMinLen
	if lenState > numLenToPosStates-1 {
		lenState = numLenToPosStates - 1
	}

	slotSym, err := f.rc.decodeBitTree(f.in, &f.inPos, f.probs.distSlot[lenState][:], 6)
	if err != nil {
		return 0, err
	}
	slot := int(slotSym) - (1 << 6)

	if slot < startPosModelIndex {
		return uint32(slot), nil
	}

	extra := (slot >> 1) - 1
	dist := uint32(2|(slot&1)) << uint(extra)

	if slot < endPosModelIndex {
		offset := int(dist) - slot - 1
		bits, err := f.rc.decodeBitTreeReverse(f.in, &f.inPos, f.probs.distSpecial[:], offset, extra)
		if err != nil {
			return 0, err
		}
		return dist + bits, nil
	}

	hi, err := f.rc.decodeDirectBits(f.in, &f.inPos, extra-numAlignBits)
	if err != nil {
		return 0, err
	}
	dist += hi << numAlignBits

	lo, err := f.rc.decodeBitTreeReverse(f.in, &f.inPos, f.probs.distAlign[:], 0, numAlignBits)
	if err != nil {
		return 0, err
	}
	return dist + lo, nil
}

// decodeSymbols runs the LZMA per-symbol loop until outPos reaches outLimit
// or a match copy exhausts the caller's real output capacity. truncatedByCap tells a mid-copy shortfall whether to
// report StatusOutLimit (caller ran out of space) or StatusDataError (the
// chunk's own declared size was violated).
func (f *decoderFrame) decodeSymbols(outLimit int, truncatedByCap bool) error {
	for {
		if err := f.rc.normalize(f.in, &f.inPos); err != nil {
			return err
		}
		if f.outPos >= outLimit {
			return nil
		}

		posState := f.posState()
		isMatchBit, err := f.rc.decodeBit(f.in, &f.inPos, &f.probs.isMatch[f.state][posState])
		if err != nil {
			return err
		}

		if isMatchBit == 0 {
			b, err := f.decodeLiteral()
			if err != nil {
				return err
			}
			f.out[f.outPos] = b
			f.outPos++
			f.state = updateStateLiteral(f.state)
			continue
		}

		isRepBit, err := f.rc.decodeBit(f.in, &f.inPos, &f.probs.isRep[f.state])
		if err != nil {
			return err
		}

		var length int
		var dist uint32

		if isRepBit == 0 {
			// Regular match: shift the rep cache, decode length then distance.
			f.rep[3], f.rep[2], f.rep[1] = f.rep[2], f.rep[1], f.rep[0]
			f.state = updateStateMatch(f.state)

			length, err = decodeLen(&f.rc, f.in, &f.inPos, &f.probs.matchLen, posState)
			if err != nil {
				return err
			}
			dist, err = f.decodeDistance(length)
			if err != nil {
				return err
			}
			f.rep[0] = dist
		} else {
			isRep0Bit, err := f.rc.decodeBit(f.in, &f.inPos, &f.probs.isRep0[f.state])
			if err != nil {
				return err
			}
			if isRep0Bit == 0 {
				isRep0LongBit, err := f.rc.decodeBit(f.in, &f.inPos, &f.probs.isRep0Long[f.state][posState])
				if err != nil {
					return err
				}
				if isRep0LongBit == 0 {
					// Short rep: one byte at distance rep[0]+1, no rep shuffle.
					f.state = updateStateShortRep(f.state)
					length = 1
				} else {
					f.state = updateStateRep(f.state)
					length, err = decodeLen(&f.rc, f.in, &f.inPos, &f.probs.repLen, posState)
					if err != nil {
						return err
					}
				}
			} else {
				isRep1Bit, err := f.rc.decodeBit(f.in, &f.inPos, &f.probs.isRep1[f.state])
				if err != nil {
					return err
				}
				var tmp uint32
				if isRep1Bit == 0 {
					tmp = f.rep[1]
				} else {
					isRep2Bit, err := f.rc.decodeBit(f.in, &f.inPos, &f.probs.isRep2[f.state])
					if err != nil {
						return err
					}
					if isRep2Bit == 0 {
						tmp = f.rep[2]
					} else {
						tmp = f.rep[3]
						f.rep[3] = f.rep[2]
					}
					f.rep[2] = f.rep[1]
				}
				f.rep[1] = f.rep[0]
				f.rep[0] = tmp

				f.state = updateStateRep(f.state)
				length, err = decodeLen(&f.rc, f.in, &f.inPos, &f.probs.repLen, posState)
				if err != nil {
					return err
				}
			}
			dist = f.rep[0]
		}

		actualDist := int(dist) + 1
		if f.outPos-f.dictOrigin < actualDist {
			return errDataError
		}

		n, err := copyMatch(f.out, f.outPos, actualDist, length, outLimit, truncatedByCap)
		f.outPos += n
		if err != nil {
			return err
		}
	}
}
