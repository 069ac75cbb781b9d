// Package filename implements the Filename Validator (C9): the
// script_match grammar for the three-hour preset and the bilingual_pattern
// grammar (scripted/unscripted sub-grammars) for the bilingual-
// conversational preset, per spec.md §4.9.
package filename

// Language is one entry in the bilingual catalogue's language list.
type Language struct {
	Code        string
	DisplayName string
}

// ContributorPair is an unordered {user_id, agent_id} pair allowed for a
// language.
type ContributorPair struct {
	UserID, AgentID string
}

// matches reports whether pair (user, agent) is this pair in either order,
// per spec.md §4.9 ("pairs are unordered sets").
func (p ContributorPair) matches(user, agent string) bool {
	return (p.UserID == user && p.AgentID == agent) || (p.UserID == agent && p.AgentID == user)
}

// Catalogue is the static language/conversation/contributor-pair data
// consumed by the bilingual validator, per spec.md §6.
type Catalogue struct {
	Languages                 []Language
	ConversationsByLanguage   map[string][]string
	ContributorPairsByLanguage map[string][]ContributorPair
}

func (c Catalogue) languageKnown(code string) bool {
	for _, l := range c.Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

func (c Catalogue) pairAllowed(lang, user, agent string) bool {
	for _, pair := range c.ContributorPairsByLanguage[lang] {
		if pair.matches(user, agent) {
			return true
		}
	}
	return false
}
