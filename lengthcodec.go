// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

// decodeLen decodes a match length 2..273 from lp, parameterised by the
// current position state.
func decodeLen(rc *rangeCoder, in []byte, pos *int, lp *lenProbs, posState int) (int, error) {
	bit, err := rc.decodeBit(in, pos, &lp.choice)
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		sym, err := rc.decodeBitTree(in, pos, lp.low[posState][:], 3)
		if err != nil {
			return 0, err
		}
		return int(sym-8) + 2, nil
	}

	bit, err = rc.decodeBit(in, pos, &lp.choice2)
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		sym, err := rc.decodeBitTree(in, pos, lp.mid[posState][:], 3)
		if err != nil {
			return 0, err
		}
		return int(sym-8) + 10, nil
	}

	sym, err := rc.decodeBitTree(in, pos, lp.high[:], 8)
	if err != nil {
		return 0, err
	}
	return int(sym-256) + 18, nil
}
