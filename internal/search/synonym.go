package search

// Synonyms maps a normalized search phrase to alternative phrasings recruiters use in postings.
var Synonyms = map[string][]string{
	"internship":        {"intern", "trainee"},
	"intern":            {"internship", "trainee"},
	"remote":            {"work from home", "wfh"},
	"wfh":               {"remote", "work from home"},
	"work from home":    {"remote", "wfh"},
	"frontend":          {"front end", "frontend developer", "ui developer"},
	"backend":           {"back end", "server developer"},
	"fullstack":         {"full stack", "full stack developer"},
	"sde":               {"software engineer", "software developer"},
	"swe":               {"software engineer", "software developer"},
	"ml":                {"machine learning"},
	"machine learning":  {"ml", "ai"},
	"designer":          {"graphic designer", "ui designer", "ux designer"},
	"hr":                {"human resources", "recruiter"},
	"data science":      {"data scientist", "data analyst"},
	"full time":         {"full-time", "permanent"},
	"part time":         {"part-time"},
	"digital marketing": {"marketing", "seo", "social media"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
