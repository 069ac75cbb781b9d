package filename

import "strings"

const spontaneousPrefix = "SPONTANEOUS_"

// BilingualPattern validates name against the bilingual-conversational
// preset's grammar, per spec.md §4.9. It selects between the scripted and
// unscripted sub-grammars by a case-insensitive check for a "spontaneous_"
// prefix: case-mismatched prefixes (e.g. "Spontaneous_...") are routed to
// the unscripted validator so the reported issue points at the casing
// itself rather than at conversation-id validity — the deliberate
// re-architecture of an observed quirk (see spec.md §9).
func BilingualPattern(name string, cat Catalogue) Result {
	trimmed := strings.TrimSpace(name)
	hasOuterWhitespace := trimmed != name

	lower := strings.ToLower(trimmed)
	hasWavSuffix := strings.HasSuffix(lower, ".wav")
	body := trimmed
	if hasWavSuffix {
		body = trimmed[:len(trimmed)-4]
	}
	doubleExtension := hasWavSuffix && strings.Contains(body, ".")

	isSpontaneous := strings.HasPrefix(strings.ToLower(body), strings.ToLower(spontaneousPrefix))

	if isSpontaneous {
		return validateUnscripted(trimmed, body, hasWavSuffix, doubleExtension, hasOuterWhitespace, cat)
	}
	return validateScripted(trimmed, body, hasWavSuffix, doubleExtension, hasOuterWhitespace, cat)
}

func hasEmbeddedWhitespace(s string) bool {
	return strings.ContainsAny(s, " \t\n\r")
}

// splitOnLanguage splits body's hyphen-delimited parts into the leading id
// portion (which may itself contain hyphens) and the trailing
// lang/user/agent tokens, by scanning for the first token the catalogue
// recognizes as a language code.
func splitOnLanguage(body string, cat Catalogue) (idParts []string, lang string, rest []string, ok bool) {
	parts := strings.Split(body, "-")
	for i := 1; i < len(parts); i++ {
		if cat.languageKnown(parts[i]) {
			return parts[:i], parts[i], parts[i+1:], true
		}
	}
	return nil, "", nil, false
}

func validateScripted(original, body string, hasWavSuffix, doubleExtension, hasOuterWhitespace bool, cat Catalogue) Result {
	var issues []string

	if !hasWavSuffix || doubleExtension {
		issues = append(issues, "filename must end with exactly one .wav extension")
	}
	if hasOuterWhitespace || hasEmbeddedWhitespace(body) {
		issues = append(issues, "filename must not contain whitespace")
	}
	if body != strings.ToLower(body) {
		issues = append(issues, "scripted filenames must be entirely lowercase")
	}

	idParts, lang, rest, ok := splitOnLanguage(body, cat)
	if !ok {
		issues = append(issues, "unrecognized language code")
		return Result{Status: "fail", Issue: strings.Join(issues, "; "),
			ExpectedFormat: "<conversation_id>-<lang>-user-<user_id>-agent-<agent_id>.wav"}
	}
	conversationID := strings.Join(idParts, "-")

	if len(rest) != 4 || rest[0] != "user" || rest[2] != "agent" || conversationID == "" {
		issues = append(issues, "expected <conversation_id>-<lang>-user-<user_id>-agent-<agent_id>")
		return Result{Status: "fail", Issue: strings.Join(issues, "; "),
			ExpectedFormat: "<conversation_id>-" + lang + "-user-<user_id>-agent-<agent_id>.wav"}
	}
	userID, agentID := rest[1], rest[3]

	if !cat.pairAllowed(lang, userID, agentID) {
		issues = append(issues, "contributor pair not recognized for language "+lang)
	}

	expected := conversationID + "-" + lang + "-user-" + userID + "-agent-" + agentID + ".wav"
	if len(issues) > 0 {
		return Result{Status: "fail", Issue: strings.Join(issues, "; "), ExpectedFormat: expected}
	}
	return Result{Status: "pass", ExpectedFormat: original}
}

func validateUnscripted(original, body string, hasWavSuffix, doubleExtension, hasOuterWhitespace bool, cat Catalogue) Result {
	var issues []string

	if !hasWavSuffix || doubleExtension {
		issues = append(issues, "filename must end with exactly one .wav extension")
	}
	if hasOuterWhitespace || hasEmbeddedWhitespace(body) {
		issues = append(issues, "filename must not contain whitespace")
	}

	if !strings.HasPrefix(body, spontaneousPrefix) {
		issues = append(issues, spontaneousPrefix+" prefix must be uppercase exactly as shown")
	}

	// Everything after the (case-insensitively detected) prefix must be
	// lowercase, independent of whether the prefix itself was cased
	// correctly.
	afterPrefix := body[len(spontaneousPrefix):]
	if len(body) < len(spontaneousPrefix) {
		afterPrefix = ""
	}
	if afterPrefix != strings.ToLower(afterPrefix) {
		issues = append(issues, "text after "+spontaneousPrefix+" must be lowercase")
	}

	idParts, lang, rest, ok := splitOnLanguage(body, cat)
	if !ok {
		issues = append(issues, "unrecognized language code")
		return Result{Status: "fail", IsSpontaneous: true, Issue: strings.Join(issues, "; "),
			ExpectedFormat: spontaneousPrefix + "<N>-<lang>-user-<user_id>-agent-<agent_id>.wav"}
	}

	idToken := strings.Join(idParts, "-")
	n := idToken
	if len(idToken) >= len(spontaneousPrefix) {
		n = idToken[len(spontaneousPrefix):]
	}
	if !isDigits(n) {
		issues = append(issues, "expected an unsigned integer after "+spontaneousPrefix)
	}

	if len(rest) != 4 || rest[0] != "user" || rest[2] != "agent" {
		issues = append(issues, "expected "+spontaneousPrefix+"<N>-<lang>-user-<user_id>-agent-<agent_id>")
		return Result{Status: "fail", IsSpontaneous: true, Issue: strings.Join(issues, "; "),
			ExpectedFormat: spontaneousPrefix + "<N>-" + lang + "-user-<user_id>-agent-<agent_id>.wav"}
	}
	userID, agentID := rest[1], rest[3]

	if !cat.pairAllowed(lang, userID, agentID) {
		issues = append(issues, "contributor pair not recognized for language "+lang)
	}

	expected := spontaneousPrefix + n + "-" + lang + "-user-" + userID + "-agent-" + agentID + ".wav"
	if len(issues) > 0 {
		return Result{Status: "fail", IsSpontaneous: true, Issue: strings.Join(issues, "; "), ExpectedFormat: expected}
	}
	return Result{Status: "pass", IsSpontaneous: true, ExpectedFormat: original}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
