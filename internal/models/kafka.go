package models

import "time"

type KafkaMessageMappingCreated struct {
	EventID     string    `json:"event_id"`
	ID          int64     `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	CreatedAt   time.Time `json:"created_at"`
}

type KafkaMessageMappingDeleted struct {
	EventID     string    `json:"event_id"`
	ID          int64     `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	DeletedAt   time.Time `json:"deleted_at"`
}
