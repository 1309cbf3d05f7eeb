// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package unlzma2

import "errors"

// Status is the outcome of a decode call. Unlike a plain error, OutLimit and
// InLimit are not necessarily failures: a caller streaming through a known
// output size may legitimately stop at OutLimit and retry with a bigger
// buffer.
type Status int

const (
	// StatusOK is a clean end of stream (control byte 0x00 consumed) or the
	// caller-supplied output buffer was filled exactly as the stream declared.
	StatusOK Status = iota
	// StatusNoMemory is reserved; this decoder never allocates and never
	// returns it.
	StatusNoMemory
	// StatusDataError means the stream is malformed: reserved control bytes,
	// reserved property byte, missing dictionary/property reset, a declared
	// size violated, or a match distance reaching outside the dictionary.
	StatusDataError
	// StatusInLimit means more input would have allowed progress.
	StatusInLimit
	// StatusOutLimit means more output would have allowed progress; only
	// returned when the stream itself is still consistent.
	StatusOutLimit
)

// String renders the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNoMemory:
		return "NO_MEMORY"
	case StatusDataError:
		return "DATA_ERROR"
	case StatusInLimit:
		return "INLIMIT"
	case StatusOutLimit:
		return "OUTLIMIT"
	default:
		return "UNKNOWN_STATUS"
	}
}

// Sentinel errors returned by the allocating Decode wrapper. A caller that
// wants the raw status instead of an error should use DecodeInto or
// DecodeStatus directly.
var (
	// ErrOptionsRequired is returned when Decode is called with a nil options
	// value (OutSize is required to size the destination buffer).
	ErrOptionsRequired = errors.New("options required: OutSize must be set")
	// ErrEmptyInput is returned when the input slice or stream is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrInputTooLarge is returned when the stream DecodeFromReader reads is
	// longer than MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")
	// ErrDataError wraps StatusDataError.
	ErrDataError = errors.New("lzma2: malformed stream")
	// ErrInLimit wraps StatusInLimit.
	ErrInLimit = errors.New("lzma2: input exhausted before stream end")
	// ErrOutLimit wraps StatusOutLimit.
	ErrOutLimit = errors.New("lzma2: output buffer too small")
)

// errForStatus maps a non-OK status to its sentinel error.
func errForStatus(s Status) error {
	switch s {
	case StatusOK, StatusNoMemory:
		return nil
	case StatusDataError:
		return ErrDataError
	case StatusInLimit:
		return ErrInLimit
	case StatusOutLimit:
		return ErrOutLimit
	default:
		return ErrDataError
	}
}

// errRangeLimit is an internal sentinel propagated up from the range coder
// when it runs out of bytes before rcLimit. The chunk driver resolves it to
// either StatusInLimit (input buffer ran out) or StatusDataError (the chunk's
// declared compressed size was short) — this is not itself an error condition.
var errRangeLimit = errors.New("lzma2: range coder byte limit reached")

// errDataError is the internal sentinel for any stream-malformed condition
// detected mid-decode (reserved bytes, a bad distance, a chunk that tried to
// produce more than its declared size, ...). The public entry point always
// maps it to StatusDataError.
var errDataError = errors.New("lzma2: data error")

// errOutOfCap is the internal sentinel for a match copy that ran out of the
// caller's real output capacity (as opposed to merely reaching a chunk's
// declared uncompressed size). The public entry point maps it to
// StatusOutLimit.
var errOutOfCap = errors.New("lzma2: output capacity exhausted")
