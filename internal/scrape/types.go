package scrape

// MangaSummary is one entry on a listing page (browse, genre, author, search).
// Optional fields that the page does not carry default to "" so templates and
// JSON consumers never see null.
type MangaSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Image         string `json:"image"`
	LatestChapter string `json:"latest_chapter"`
	Rating        string `json:"rating"`
	Author        string `json:"author"`
	UpdatedAt     int64  `json:"updated_at"` // epoch milliseconds, 0 when unparseable
}

// ChapterRef is one row of the chapter list on a detail page.
type ChapterRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt int64  `json:"updated_at"`
}

// MangaDetail is the full record scraped from a title's detail page.
// Chapters keep the upstream order: newest first. Callers that want
// ascending order must reverse explicitly.
type MangaDetail struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
	Authors     []string     `json:"authors"`
	Genres      []string     `json:"genres"`
	Status      string       `json:"status"`
	Chapters    []ChapterRef `json:"chapters"`
}

// Chapter is a readable chapter: the ordered page images.
type Chapter struct {
	MangaID string   `json:"manga_id"`
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Pages   []string `json:"pages"`
}

// AuthorPage is the scraped listing of one author's titles.
type AuthorPage struct {
	Slug   string         `json:"slug"`
	Name   string         `json:"name"`
	Titles []MangaSummary `json:"titles"`
}

// FirstChapter resolves the lowest-numbered chapter of a detail record.
// Upstream lists chapters newest first, so the first chapter is the last
// element. Returns false when the title has no chapters.
func FirstChapter(d *MangaDetail) (ChapterRef, bool) {
	if len(d.Chapters) == 0 {
		return ChapterRef{}, false
	}
	return d.Chapters[len(d.Chapters)-1], true
}
