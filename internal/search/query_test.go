package search

import (
	"reflect"
	"testing"
)

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"  Backend   Developer!! ": "backend developer",
		"Front-End/React":          "front end react",
		"C++, Go":                  "c go",
	}
	for in, want := range cases {
		if got := NormalizeQuery(in); got != want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandQuery_WholeQuerySynonyms(t *testing.T) {
	got := ExpandQuery("internship")
	want := []string{"internship", "intern", "trainee"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandQuery = %v, want %v", got, want)
	}
}

func TestExpandQuery_WordAndPhraseSynonyms(t *testing.T) {
	got := ExpandQuery("remote backend")
	want := []string{"remote backend", "remote", "work from home", "wfh", "backend", "back end", "server developer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandQuery = %v, want %v", got, want)
	}
}

func TestExpandQuery_CapsSynonymsButKeepsEveryWord(t *testing.T) {
	got := ExpandQuery("remote backend frontend internship")
	want := []string{
		"remote backend frontend internship",
		"remote", "work from home", "wfh",
		"backend", "back end", "server developer",
		"frontend", "front end", "frontend developer",
		"internship",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandQuery = %v, want %v", got, want)
	}

	long := "go java python rust kotlin swift scala ruby php perl lua dart"
	got = ExpandQuery(long)
	seen := map[string]bool{}
	for _, v := range got {
		seen[v] = true
	}
	for _, w := range Keywords(long) {
		if !seen[w] {
			t.Errorf("word %q missing from variants %v", w, got)
		}
	}
}

func TestKeywords_Dedupes(t *testing.T) {
	got := Keywords("Go go  Remote")
	want := []string{"go", "remote"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Keywords = %v, want %v", got, want)
	}
	if len(Keywords("  ")) != 0 {
		t.Fatal("expected no keywords for blank input")
	}
}
