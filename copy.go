// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package unlzma2

// copyMatch copies length bytes from out[outPos-dist:outPos-dist+length] to
// out[outPos:outPos+length], where dist is the actual byte distance (already
// rep[0]+1, not the raw rep[0] slot value). If length would reach past
// outLimit, it copies as much as fits and reports the shortfall via
// errOutOfCap or errDataError depending on why outLimit was set.
//
// dist may be smaller than length: LZ77 allows a match to reference bytes
// the match itself is still producing. copy() cannot express that for
// dist < length (it would read output copyMatch hasn't written yet), so that
// case grows the copied region by repeated doubling instead of a byte-at-a-
// time loop, which is both correct (each doubling only reads already-written
// output) and much cheaper.
func copyMatch(out []byte, outPos, dist, length, outLimit int, truncatedByCap bool) (int, error) {
	mPos := outPos - dist
	if mPos < 0 {
		return 0, errDataError
	}

	avail := outLimit - outPos
	n := length
	truncated := false
	if n > avail {
		n = avail
		truncated = true
	}

	if n > 0 {
		if dist >= n {
			copy(out[outPos:outPos+n], out[mPos:mPos+n])
		} else {
			copy(out[outPos:outPos+dist], out[mPos:outPos])
			copied := dist
			for copied < n {
				k := copy(out[outPos+copied:outPos+n], out[outPos:outPos+copied])
				copied += k
			}
		}
	}

	if truncated {
		if truncatedByCap {
			return n, errOutOfCap
		}
		return n, errDataError
	}
	return n, nil
}
