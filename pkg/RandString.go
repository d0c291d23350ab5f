package pkg

import (
	"math/rand"
	"sync"
	"time"
)

// CodeAlphabet leaves out characters that are easy to misread (I, O, 0, 1).
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var (
	mu  sync.Mutex
	src = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func RandString(n int) string {
	mu.Lock()
	defer mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = CodeAlphabet[src.Intn(len(CodeAlphabet))]
	}
	return string(b)
}
