package schedule

import "strings"

// locateRow finds the token identifying the target person and returns it.
// Matching is a case-insensitive substring test against the full name first;
// if nothing matches, it retries with only the name's first whitespace-
// delimited component. Among matches the highest confidence wins, with the
// stable detection index breaking ties.
func locateRow(tokens []Token, targetName string) (Token, bool) {
	matches := matchName(tokens, targetName)
	if len(matches) == 0 {
		if fields := strings.Fields(targetName); len(fields) > 0 {
			matches = matchName(tokens, fields[0])
		}
	}
	if len(matches) == 0 {
		return Token{}, false
	}

	best := matches[0]
	for _, t := range matches[1:] {
		if t.Confidence > best.Confidence ||
			(t.Confidence == best.Confidence && t.Index < best.Index) {
			best = t
		}
	}
	return best, true
}

func matchName(tokens []Token, name string) []Token {
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var matches []Token
	for _, t := range tokens {
		if strings.Contains(strings.ToUpper(t.Text), needle) {
			matches = append(matches, t)
		}
	}
	return matches
}
