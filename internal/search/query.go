package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lower-cases the input, keeps letters, digits and single
// spaces, and drops everything else.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == ',':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns the normalized query followed by synonym variants of the
// whole query, of each two-word phrase and of each word. Synonyms stop being
// added once there are ten variants but every word of the query is kept.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	words := strings.Fields(normalized)
	out := make([]string, 0, maxVariants+len(words))
	seen := make(map[string]struct{}, maxVariants+len(words))
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	addSynonyms := func(term string) {
		for _, syn := range GetSynonyms(term) {
			if len(out) >= maxVariants {
				return
			}
			add(syn)
		}
	}

	add(normalized)
	addSynonyms(normalized)
	if len(words) > 1 {
		for i := 0; i+1 < len(words); i++ {
			addSynonyms(words[i] + " " + words[i+1])
		}
		for _, w := range words {
			add(w)
			addSynonyms(w)
		}
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input, Normalized: NormalizeQuery(input)}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}

// Keywords splits a free-text query into distinct normalized words.
func Keywords(input string) []string {
	words := strings.Fields(NormalizeQuery(input))
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
