package lexer

import "testing"

// FuzzTokenize checks that Tokenize never panics, and when it does produce a
// token stream, applying it always ends in an EOF token.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"action! paisa vasool",
		`maan lo x = 10 + 20 * 3 - 4 / 2 % 5`,
		`agar kismat rahi (sach) { ek baat bataun: "hi" } nahi to (galat) { } warna { }`,
		`jab tak hai jaan (x < 10) { x = x + 1 me bahar ja raha hu }`,
		`climax add(a, b) { dialogue wapas do a + b }`,
		`"escaped \n \t \" string"`,
		"@#$%^&*",
		"maanagerwarnasachgalatkhaali",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, source string) {
		tokens, err := Tokenize(source)
		if err != nil {
			return
		}
		if len(tokens) == 0 {
			t.Fatalf("expected at least an EOF token for source %q", source)
		}
		if tokens[len(tokens)-1].Type != TokEOF {
			t.Fatalf("expected token stream to end in EOF for source %q", source)
		}
	})
}
