// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package unlzma2

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

// TestFuzzNeverOverrunsBuffers feeds arbitrary byte sequences to the bare
// decode entry point and checks it never reports cursors outside the
// buffers it was given, and never returns OK without having actually
// consumed an end-of-stream control byte.
func TestFuzzNeverOverrunsBuffers(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOfN(rapid.Byte(), 0, 4096).Draw(rt, "in")
		outCap := rapid.IntRange(0, 4096).Draw(rt, "outCap")
		out := make([]byte, outCap)

		if len(in) == 0 {
			return
		}

		status, consumed, produced := DecodeStatus(in, out)
		if consumed < 0 || consumed > len(in) {
			rt.Fatalf("consumed=%d out of [0,%d]", consumed, len(in))
		}
		if produced < 0 || produced > outCap {
			rt.Fatalf("produced=%d out of [0,%d]", produced, outCap)
		}
		if status == StatusOK && (consumed == 0 || in[consumed-1] != ctrlEndOfStream) {
			rt.Fatalf("reported OK without consuming an end-of-stream byte: consumed=%d", consumed)
		}
	})
}

// TestFuzzRoundTripThroughEncoder generates random plaintexts, encodes them
// with the test-only encoder, and checks decoding reproduces the exact
// bytes with StatusOK, for both the LZMA-chunk and raw-chunk paths.
func TestFuzzRoundTripThroughEncoder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		plain := rapid.SliceOfN(rapid.Byte(), 0, 2048).Draw(rt, "plain")
		lc := rapid.IntRange(0, 4).Draw(rt, "lc")
		lp := rapid.IntRange(0, 4).Draw(rt, "lp")
		pb := rapid.IntRange(0, 4).Draw(rt, "pb")
		if lc+lp > 4 {
			lp = 4 - lc
		}
		useRaw := rapid.Bool().Draw(rt, "useRaw")

		var enc []byte
		if useRaw {
			enc = encodeUncompressedLZMA2(plain)
		} else {
			enc = encodeRawLZMA2(plain, lc, lp, pb)
		}

		out, err := Decode(enc, DefaultOptions(len(plain)+16))
		if err != nil {
			rt.Fatalf("decode error on %d-byte input: %v", len(plain), err)
		}
		if !bytes.Equal(out, plain) {
			rt.Fatalf("round trip mismatch: got %d bytes, want %d", len(out), len(plain))
		}
	})
}

// TestFuzzTruncatedEncoderOutputNeverFabricatesBytes checks that feeding a
// random prefix of a valid encoded stream into the decoder never yields
// output bytes that disagree with the true plaintext prefix, regardless of
// where the cut falls.
func TestFuzzTruncatedEncoderOutputNeverFabricatesBytes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		plain := rapid.SliceOfN(rapid.Byte(), 1, 512).Draw(rt, "plain")
		enc := encodeRawLZMA2(plain, 3, 0, 2)
		cut := rapid.IntRange(0, len(enc)).Draw(rt, "cut")

		out := make([]byte, len(plain)+16)
		_, _, produced := DecodeStatus(enc[:cut], out)
		if !bytes.Equal(out[:produced], plain[:produced]) {
			rt.Fatalf("cut=%d produced bytes diverge from true plaintext prefix", cut)
		}
	})
}
