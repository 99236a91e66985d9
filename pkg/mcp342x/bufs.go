package mcp342x

import "sync"

var oneByte = &sync.Pool{New: func() interface{} { return make([]byte, 1) }}

func get1Byte() []byte {
	return oneByte.Get().([]byte)
}

func put1Byte(b []byte) {
	b[0] = 0
	oneByte.Put(b)
}
