package models

// URLMapping is a persisted pair of an original URL and its short code.
type URLMapping struct {
	ID          int64  `db:"id" json:"id"`
	OriginalURL string `db:"original_url" json:"original_url"`
	ShortCode   string `db:"short_code" json:"short_code"`
}
