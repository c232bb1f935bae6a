package i18n

import "testing"

func TestParse(t *testing.T) {
	cases := map[string]Locale{
		"":                       FR,
		"de-CH,de;q=0.9,en;q=0.8": DE,
		"es-ES, it_CH":           IT,
		"EN":                     EN,
		"pt-BR":                  FR,
	}
	for header, want := range cases {
		if got := Parse(header, FR); got != want {
			t.Errorf("Parse(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestStaticFallsBackToFrench(t *testing.T) {
	var tr Static
	got := tr.T(Locale("rm"), KeyPurchaseSuccess, map[string]string{"credits": "12"})
	if got != "12 crédits ont été ajoutés à votre compte" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := tr.T(EN, "missing.key", nil); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}
