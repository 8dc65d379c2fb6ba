package harness

// Stage is the last step a round trip reached.
type Stage int

const (
	StageInit Stage = iota
	StageKeygen
	StageSign
	StageVerify
	StageTamperVerify
	StageEncapsulate
	StageDecapsulate
	StageTamperDecapsulate
	StageDone
)

var stageNames = [...]string{
	StageInit:              "init",
	StageKeygen:            "keygen",
	StageSign:              "sign",
	StageVerify:            "verify",
	StageTamperVerify:      "tamper-verify",
	StageEncapsulate:       "encapsulate",
	StageDecapsulate:       "decapsulate",
	StageTamperDecapsulate: "tamper-decapsulate",
	StageDone:              "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
