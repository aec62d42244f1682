package posts

import (
	"math/rand"
	"strings"
)

var fixtureWords = []string{
	"sunt", "aut", "facere", "repellat", "provident", "occaecati", "excepturi",
	"optio", "reprehenderit", "qui", "est", "esse", "ea", "molestias", "quasi",
	"exercitationem", "eum", "et", "iusto", "sed", "quo", "iure", "voluptatem",
	"occaecati", "omnis", "eligendi", "dolorem", "magnam", "nesciunt", "vero",
}

// GeneratePosts builds n deterministic placeholder drafts for seeding the fixture server.
// Ten posts are attributed to each user, like the public collection.
func GeneratePosts(n int, seed int64) []Draft {
	rng := rand.New(rand.NewSource(seed))

	drafts := make([]Draft, 0, n)
	for i := 0; i < n; i++ {
		drafts = append(drafts, Draft{
			UserID: i/10 + 1,
			Title:  sentence(rng, 4+rng.Intn(5)),
			Body:   paragraph(rng, 3),
		})
	}
	return drafts
}

func sentence(rng *rand.Rand, words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fixtureWords[rng.Intn(len(fixtureWords))]
	}
	return strings.Join(parts, " ")
}

func paragraph(rng *rand.Rand, lines int) string {
	parts := make([]string, lines)
	for i := range parts {
		parts[i] = sentence(rng, 6+rng.Intn(6))
	}
	return strings.Join(parts, "\n")
}
