package dto

type ShortURLResponse struct {
	ShortURL string `json:"short_url"`
}

type OriginalURLResponse struct {
	OriginalURL string `json:"original_url"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type MappingResponse struct {
	ID          int64  `json:"id"`
	OriginalURL string `json:"original_url"`
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
}

type MappingListResponse struct {
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Mappings []MappingResponse `json:"mappings"`
}
