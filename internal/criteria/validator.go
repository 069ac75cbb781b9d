package criteria

// Overall is the aggregate verdict across all applicable rules.
type Overall string

const (
	OverallPass    Overall = "pass"
	OverallWarning Overall = "warning"
	OverallFail    Overall = "fail"
	OverallError   Overall = "error"
)

// Validate folds every rule in the fixed registry over props/findings under
// preset p, per spec.md §4.8. Rules that don't apply to p (e.g. no
// min_duration_s configured) are omitted from the returned map entirely.
func Validate(p Preset, props FileProperties, f Findings) (map[string]ValidationResult, Overall) {
	results := make(map[string]ValidationResult, len(rules))

	overall := OverallPass
	for name, r := range rules {
		result, applicable := r(p, props, f)
		if !applicable {
			continue
		}
		results[name] = result
		switch result.Status {
		case Fail:
			overall = OverallFail
		case Warning:
			if overall != OverallFail {
				overall = OverallWarning
			}
		}
	}

	return results, overall
}
