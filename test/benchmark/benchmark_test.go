package benchmark

import (
	"fmt"
	"testing"

	"github.com/editorial-backoffice/internal/listing"
	"github.com/editorial-backoffice/internal/slug"
)

func BenchmarkDeriveSlug(b *testing.B) {
	titles := []string{
		"Wash the Sins!",
		"Éléphant à l'école",
		"Attention: la ponctuation (et les parenthèses)!",
		"Un long titre avec beaucoup de mots à transformer en slug",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		slug.Derive(titles[i%len(titles)])
	}
}

func BenchmarkPaginate(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("items_%d", size), func(b *testing.B) {
			items := make([]string, size)
			for i := range items {
				items[i] = fmt.Sprintf("slug-%d", i)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				listing.Paginate(items, i%(size/10+1), 10)
			}
		})
	}
}

func BenchmarkLabel(b *testing.B) {
	slugs := []string{
		"wash-the-sins",
		"un-long-slug-avec-beaucoup-de-segments-a-transformer",
		"recette-<em>du</em>-jour",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		listing.Label(slugs[i%len(slugs)])
	}
}
