package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// idFromHref pulls the upstream identifier out of a link, e.g.
// "https://host/manga/some-title" -> "some-title".
func idFromHref(href string) string {
	href = strings.TrimRight(strings.TrimSpace(href), "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}

// ParseListing extracts the manga grid from a browse or genre page.
// A page with zero items is not an error; the caller decides whether an
// empty slice means "not found" or "past the last page".
func ParseListing(html string) Result[[]MangaSummary] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fail[[]MangaSummary]("parse listing html: " + err.Error())
	}

	items := []MangaSummary{}
	doc.Find("div.content-genres-item").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.genres-item-img").First()
		href, _ := link.Attr("href")

		m := MangaSummary{
			ID:            idFromHref(href),
			Title:         strings.TrimSpace(s.Find("h3 a.genres-item-name").First().Text()),
			LatestChapter: strings.TrimSpace(s.Find("a.genres-item-chap").First().Text()),
			Rating:        strings.TrimSpace(s.Find("em.genres-item-rate").First().Text()),
			Author:        strings.TrimSpace(s.Find("span.genres-item-author").First().Text()),
			UpdatedAt:     ParseUpstreamDate(s.Find("span.genres-item-time").First().Text()),
		}
		if src, found := s.Find("img.img-loading").First().Attr("src"); found {
			m.Image = src
		}
		items = append(items, m)
	})

	return ok(items)
}

// ParseSearch extracts results from a search page. The search grid uses a
// different item markup than browse listings, hence the separate selectors.
func ParseSearch(html string) Result[[]MangaSummary] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fail[[]MangaSummary]("parse search html: " + err.Error())
	}

	items := []MangaSummary{}
	doc.Find("div.search-story-item").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.item-img").First()
		href, _ := link.Attr("href")

		m := MangaSummary{
			ID:            idFromHref(href),
			Title:         strings.TrimSpace(s.Find("h3 a.item-title").First().Text()),
			LatestChapter: strings.TrimSpace(s.Find("a.item-chapter").First().Text()),
			Rating:        strings.TrimSpace(s.Find("em.item-rate").First().Text()),
			Author:        strings.TrimSpace(s.Find("span.item-author").First().Text()),
			UpdatedAt:     ParseUpstreamDate(s.Find("span.item-time").First().Text()),
		}
		if src, found := link.Find("img").First().Attr("src"); found {
			m.Image = src
		}
		items = append(items, m)
	})

	return ok(items)
}

// ParseDetail extracts a title's detail page. The title node is the shape
// check: a document without it is not a detail page at all.
func ParseDetail(html, mangaID string) Result[MangaDetail] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fail[MangaDetail]("parse detail html: " + err.Error())
	}

	title := strings.TrimSpace(doc.Find("div.story-info-right h1").First().Text())
	if title == "" {
		return fail[MangaDetail]("detail page has no title node")
	}

	d := MangaDetail{
		ID:    mangaID,
		Title: title,
	}
	if src, found := doc.Find("span.info-image img").First().Attr("src"); found {
		d.Image = src
	}

	// Description node carries a heading child; drop it.
	desc := doc.Find("div.panel-story-info-description").First().Clone()
	desc.Find("h3").Remove()
	d.Description = strings.TrimSpace(desc.Text())

	doc.Find("table.variations-tableInfo tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(row.Find("td.table-label").First().Text()))
		value := row.Find("td.table-value").First()
		switch {
		case strings.Contains(label, "author"):
			value.Find("a").Each(func(_ int, a *goquery.Selection) {
				if name := strings.TrimSpace(a.Text()); name != "" {
					d.Authors = append(d.Authors, name)
				}
			})
		case strings.Contains(label, "status"):
			d.Status = strings.TrimSpace(value.Text())
		case strings.Contains(label, "genre"):
			value.Find("a").Each(func(_ int, a *goquery.Selection) {
				if g := strings.TrimSpace(a.Text()); g != "" {
					d.Genres = append(d.Genres, g)
				}
			})
		}
	})

	// Upstream lists chapters newest first. Keep that order; FirstChapter
	// and ascending call sites handle the reversal.
	doc.Find("ul.row-content-chapter li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a.chapter-name").First()
		href, _ := a.Attr("href")
		d.Chapters = append(d.Chapters, ChapterRef{
			ID:        idFromHref(href),
			Name:      strings.TrimSpace(a.Text()),
			UpdatedAt: ParseUpstreamDate(li.Find("span.chapter-time").First().Text()),
		})
	})

	return ok(d)
}

// ParseChapter extracts the ordered page images of a chapter.
func ParseChapter(html, mangaID, chapterID string) Result[Chapter] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fail[Chapter]("parse chapter html: " + err.Error())
	}

	c := Chapter{
		MangaID: mangaID,
		ID:      chapterID,
		Title:   strings.TrimSpace(doc.Find("div.panel-chapter-info-top h1").First().Text()),
	}
	doc.Find("div.container-chapter-reader img").Each(func(_ int, img *goquery.Selection) {
		if src, found := img.Attr("src"); found && src != "" {
			c.Pages = append(c.Pages, src)
		}
	})

	if len(c.Pages) == 0 {
		return fail[Chapter]("chapter page has no reader images")
	}
	return ok(c)
}

// ParseAuthor extracts an author page: the author's name plus their titles,
// which reuse the browse-grid markup.
func ParseAuthor(html, slug string) Result[AuthorPage] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fail[AuthorPage]("parse author html: " + err.Error())
	}

	listing := ParseListing(html)
	if !listing.OK() {
		return fail[AuthorPage](listing.Err)
	}

	return ok(AuthorPage{
		Slug:   slug,
		Name:   strings.TrimSpace(doc.Find("div.panel-content-genres h1").First().Text()),
		Titles: listing.Data,
	})
}
