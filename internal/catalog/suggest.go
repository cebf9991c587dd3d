package catalog

import (
	"sort"
	"strings"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to limit titles that loosely resemble query.
// It is only meant for "did you mean" hints when Filter comes back empty,
// so the ordering here is by closeness, not catalog order.
func Suggest(books []domain.Book, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 || len(books) == 0 {
		return nil
	}

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}

	// Subsequence matches first ("clncode" -> "Clean Code")
	ranks := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	seen := make(map[string]bool)
	var out []string
	for _, r := range ranks {
		if seen[r.Target] {
			continue
		}
		seen[r.Target] = true
		out = append(out, r.Target)
		if len(out) == limit {
			return out
		}
	}

	// Then typo matches against individual title words ("clena" -> "Clean Code")
	lowerQuery := strings.ToLower(query)
	maxDist := len([]rune(lowerQuery)) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	type candidate struct {
		title string
		dist  int
		index int
	}
	var typos []candidate
	for i, title := range titles {
		if seen[title] {
			continue
		}
		best := -1
		for _, word := range strings.Fields(strings.ToLower(title)) {
			d := fuzzy.LevenshteinDistance(lowerQuery, word)
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= maxDist {
			typos = append(typos, candidate{title: title, dist: best, index: i})
			seen[title] = true
		}
	}
	sort.SliceStable(typos, func(i, j int) bool {
		if typos[i].dist != typos[j].dist {
			return typos[i].dist < typos[j].dist
		}
		return typos[i].index < typos[j].index
	})

	for _, c := range typos {
		out = append(out, c.title)
		if len(out) == limit {
			break
		}
	}
	return out
}
