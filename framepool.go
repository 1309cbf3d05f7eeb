// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package unlzma2

import "sync"

// framePool recycles decoderFrame values (each ~29 KiB, dominated by
// probModel) across decode calls so repeated one-shot decodes don't pay a
// fresh allocation every time. A pooled frame is fully reset before reuse;
// nothing about its previous occupant leaks into the next call.
var framePool = sync.Pool{
	New: func() any {
		return &decoderFrame{}
	},
}

// acquireFrame gets a zeroed decoderFrame from the pool.
func acquireFrame() *decoderFrame {
	f := framePool.Get().(*decoderFrame)
	f.reset()
	return f
}

// releaseFrame returns a decoderFrame to the pool, dropping its references
// to the caller's buffers first.
func releaseFrame(f *decoderFrame) {
	if f == nil {
		return
	}
	f.in = nil
	f.out = nil
	framePool.Put(f)
}
