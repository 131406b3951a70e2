package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageURL(t *testing.T) {
	listing := "https://shop.example.com/sneakers?sort=newest"

	assert.Equal(t, listing, pageURL(listing, 1))
	assert.Equal(t, listing+"&currentPage=2", pageURL(listing, 2))
	assert.Equal(t, listing+"&currentPage=14", pageURL(listing, 14))
}

func TestRewriteImageURL(t *testing.T) {
	t.Run("rewrites wid and hei", func(t *testing.T) {
		got := rewriteImageURL("https://images.example.com/nike.png?wid=250&hei=250&fmt=png")
		assert.Contains(t, got, "wid=500")
		assert.Contains(t, got, "hei=500")
		assert.Contains(t, got, "fmt=png")
	})

	t.Run("leaves URLs without size params alone", func(t *testing.T) {
		raw := "https://images.example.com/nike.png?fmt=png"
		assert.Equal(t, raw, rewriteImageURL(raw))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", rewriteImageURL(""))
	})
}

func TestNormalizeEntries(t *testing.T) {
	entries := []Entry{
		{Name: "  Air Max 90  ", Alt: " White ", FinalPrice: " 129,99 € ", ImageURL: " https://img.example.com/a.png?wid=100&hei=100 "},
		{Name: "", FinalPrice: "89,99 €"},
		{Name: "", Alt: "orphan card", FinalPrice: ""},
	}

	got := normalizeEntries(entries)

	assert.Len(t, got, 2)
	assert.Equal(t, "Air Max 90", got[0].Name)
	assert.Equal(t, "White", got[0].Alt)
	assert.Equal(t, "129,99 €", got[0].FinalPrice)
	assert.Contains(t, got[0].ImageURL, "wid=500")
	assert.Equal(t, "89,99 €", got[1].FinalPrice)
}
