package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"hi-IN,hi;q=0.9,en;q=0.8": "hi",
		"EN-gb":                   "en",
		"fr-FR,hi;q=0.5":          "hi",
		"fr-FR":                   "en",
		"":                        "en",
	}
	for header, want := range cases {
		if got := DetectLanguage(header); got != want {
			t.Errorf("%q: expected %s got %s", header, want, got)
		}
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("hi", "required") != "आवश्यक" {
		t.Fatalf("expected hindi translation")
	}
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	if T("es", "expired_token") != "Token has expired." {
		t.Fatalf("expected en fallback for es")
	}
	if Tf("en", "token_generated", 5) != "Token generated. It will expire in 5 minutes." {
		t.Fatalf("unexpected %q", Tf("en", "token_generated", 5))
	}
}

func TestEveryCodeHasEnglish(t *testing.T) {
	for lang, m := range messages {
		for code := range m {
			if _, ok := messages[DefaultLanguage][code]; !ok {
				t.Errorf("%s has %q with no english message", lang, code)
			}
		}
	}
}
