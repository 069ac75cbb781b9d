package filename

import "testing"

func testCatalogue() Catalogue {
	return Catalogue{
		Languages: []Language{{Code: "en", DisplayName: "English"}, {Code: "es", DisplayName: "Spanish"}},
		ContributorPairsByLanguage: map[string][]ContributorPair{
			"en": {{UserID: "u1", AgentID: "a1"}},
		},
	}
}

func TestBilingualPatternScriptedPass(t *testing.T) {
	r := BilingualPattern("conv1-en-user-u1-agent-a1.wav", testCatalogue())
	if r.Status != "pass" {
		t.Fatalf("status = %q, issue=%q", r.Status, r.Issue)
	}
	if r.IsSpontaneous {
		t.Error("scripted filename should not be marked spontaneous")
	}
}

func TestBilingualPatternSwapInvariant(t *testing.T) {
	cat := testCatalogue()
	a := BilingualPattern("conv1-en-user-u1-agent-a1.wav", cat)
	b := BilingualPattern("conv1-en-user-a1-agent-u1.wav", cat)
	if a.Status != "pass" || b.Status != "pass" {
		t.Fatalf("both orderings of an unordered pair should pass: a=%q b=%q", a.Status, b.Status)
	}
}

func TestBilingualPatternUnrecognizedPair(t *testing.T) {
	r := BilingualPattern("conv1-en-user-stranger-agent-a1.wav", testCatalogue())
	if r.Status != "fail" {
		t.Fatalf("status = %q, want fail", r.Status)
	}
}

func TestBilingualPatternUnscripted(t *testing.T) {
	r := BilingualPattern("SPONTANEOUS_1-en-user-u1-agent-a1.wav", testCatalogue())
	if r.Status != "pass" {
		t.Fatalf("status = %q, issue=%q", r.Status, r.Issue)
	}
	if !r.IsSpontaneous {
		t.Error("expected IsSpontaneous true")
	}
}

func TestBilingualPatternCaseMismatchedPrefixRoutesToUnscripted(t *testing.T) {
	r := BilingualPattern("Spontaneous_1-en-user-u1-agent-a1.wav", testCatalogue())
	if !r.IsSpontaneous {
		t.Fatal("a case-mismatched spontaneous_ prefix should still route to the unscripted grammar")
	}
	if r.Status != "fail" {
		t.Fatalf("status = %q, want fail (bad casing)", r.Status)
	}
}

func TestBilingualPatternRejectsWhitespace(t *testing.T) {
	r := BilingualPattern(" conv1-en-user-u1-agent-a1.wav", testCatalogue())
	if r.Status != "fail" {
		t.Fatalf("status = %q, want fail for outer whitespace", r.Status)
	}
}

func TestBilingualPatternRejectsDoubleExtension(t *testing.T) {
	r := BilingualPattern("conv1-en-user-u1-agent-a1.wav.wav", testCatalogue())
	if r.Status != "fail" {
		t.Fatalf("status = %q, want fail for double extension", r.Status)
	}
}
