package handler

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 1 << 10
	// Buffers grown past this by a large response are dropped instead of pooled
	maxPooledBufferSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Grow(initialBufferSize)
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
