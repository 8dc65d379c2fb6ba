package harness

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	debugFlag   atomic.Bool
	debugWriter io.Writer = os.Stderr
	debugMu     sync.RWMutex
)

func init() {
	if os.Getenv("OQSPROV_DEBUG") == "1" {
		debugFlag.Store(true)
	}
}

func debugEnabled() bool {
	return debugFlag.Load()
}

// debugLogResult prints one line per round trip. label is the algorithm,
// suffixed with the digest on signature paths ("dilithium2/SHA512").
func debugLogResult(label string, res Result, sig []byte) {
	if !debugEnabled() {
		return
	}

	line := fmt.Sprintf("[oqs-harness] alg=%s stage=%s status=%s sig=%s", label, res.Stage, res.Status(), shortHex(sig))
	if res.Err != nil {
		line += " reason=" + res.Err.Error()
	}

	debugMu.RLock()
	writer := debugWriter
	debugMu.RUnlock()
	fmt.Fprintln(writer, line)
}

func shortHex(bz []byte) string {
	if len(bz) == 0 {
		return "n/a"
	}
	hexStr := strings.ToUpper(hex.EncodeToString(bz))
	if len(hexStr) > 16 {
		return hexStr[:16]
	}
	return hexStr
}
