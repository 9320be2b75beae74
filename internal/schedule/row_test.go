package schedule

import "testing"

func TestLocateRow(t *testing.T) {
	t.Run("case-insensitive substring match", func(t *testing.T) {
		tokens := []Token{
			tok("schedule december", 0.9, 100, 10, 0),
			tok("nina aronova", 0.8, 100, 200, 1),
		}
		got, ok := locateRow(tokens, "NINA ARONOVA")
		if !ok {
			t.Fatal("expected match")
		}
		if got.Index != 1 {
			t.Fatalf("matched wrong token: %+v", got)
		}
	})

	t.Run("full name beats first-name fallback", func(t *testing.T) {
		// A lone high-confidence "NINA" must not shadow the full-name match.
		tokens := []Token{
			tok("NINA", 0.99, 100, 50, 0),
			tok("NINA ARONOVA", 0.60, 100, 200, 1),
		}
		got, ok := locateRow(tokens, "NINA ARONOVA")
		if !ok {
			t.Fatal("expected match")
		}
		if got.Index != 1 {
			t.Fatalf("fallback used despite full match: %+v", got)
		}
	})

	t.Run("first-name fallback when full name absent", func(t *testing.T) {
		tokens := []Token{
			tok("NINA", 0.7, 100, 200, 0),
		}
		got, ok := locateRow(tokens, "NINA ARONOVA")
		if !ok {
			t.Fatal("expected fallback match")
		}
		if got.Index != 0 {
			t.Fatalf("matched wrong token: %+v", got)
		}
	})

	t.Run("highest confidence wins", func(t *testing.T) {
		tokens := []Token{
			tok("NINA ARONOVA", 0.5, 100, 100, 0),
			tok("NINA ARONOVA", 0.9, 100, 300, 1),
		}
		got, _ := locateRow(tokens, "NINA ARONOVA")
		if got.Index != 1 {
			t.Fatalf("expected higher-confidence token, got %+v", got)
		}
	})

	t.Run("confidence tie resolves to earlier detection", func(t *testing.T) {
		tokens := []Token{
			tok("NINA ARONOVA", 0.9, 100, 100, 0),
			tok("NINA ARONOVA", 0.9, 100, 300, 1),
		}
		got, _ := locateRow(tokens, "NINA ARONOVA")
		if got.Index != 0 {
			t.Fatalf("expected earlier token on tie, got %+v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		tokens := []Token{tok("IVAN PETROV", 0.9, 100, 100, 0)}
		if _, ok := locateRow(tokens, "NINA ARONOVA"); ok {
			t.Fatal("expected no match")
		}
	})

	t.Run("empty target name never matches", func(t *testing.T) {
		tokens := []Token{tok("anything", 0.9, 100, 100, 0)}
		if _, ok := locateRow(tokens, "   "); ok {
			t.Fatal("expected no match for blank name")
		}
	})
}
