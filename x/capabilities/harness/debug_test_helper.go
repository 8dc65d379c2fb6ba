package harness

import "io"

func TestOnlySetDebug(enabled bool) {
	debugFlag.Store(enabled)
}

func TestOnlySwapDebugWriter(w io.Writer) (restore func()) {
	debugMu.Lock()
	prev := debugWriter
	debugWriter = w
	debugMu.Unlock()
	return func() {
		debugMu.Lock()
		debugWriter = prev
		debugMu.Unlock()
	}
}

func TestOnlyEmitDebugLog(label string, res Result, sig []byte) {
	debugLogResult(label, res, sig)
}
