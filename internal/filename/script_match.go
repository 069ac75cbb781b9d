package filename

import "strings"

// Result is C9's output, per spec.md §3: {status, expected_format, issue,
// is_spontaneous}. Status mirrors criteria.Status's string values (pass/
// warning/fail) without importing that package, so filename has no
// dependency on criteria; callers convert when assembling a Report.
type Result struct {
	Status        string
	ExpectedFormat string
	Issue         string
	IsSpontaneous bool
}

// ScriptMatch validates name against the three-hour preset's grammar:
// <script_base>_<speaker_id>.wav, matched case-sensitively against an
// ordered list of allowed script base names, per spec.md §4.9.
func ScriptMatch(name string, allowedBases []string, speakerID string) Result {
	trimmed := strings.TrimSpace(name)
	base := trimmed
	if len(base) >= 4 && strings.EqualFold(base[len(base)-4:], ".wav") {
		base = base[:len(base)-4]
	}

	for _, allowed := range allowedBases {
		prefix := allowed + "_"
		if !strings.HasPrefix(base, prefix) {
			continue
		}
		remainder := base[len(prefix):]
		if remainder == speakerID {
			return Result{Status: "pass", ExpectedFormat: trimmed}
		}
		return Result{
			Status:         "fail",
			Issue:          "Incorrect speaker id",
			ExpectedFormat: allowed + "_" + speakerID + ".wav",
		}
	}

	return Result{
		Status:         "fail",
		Issue:          "No matching script",
		ExpectedFormat: "<script_base>_" + speakerID + ".wav",
	}
}
