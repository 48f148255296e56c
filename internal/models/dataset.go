package models

import "time"

// Dataset is a named, persisted ingestion batch.
type Dataset struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	UploadedAt   time.Time     `json:"uploaded_at" yaml:"uploaded_at"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
}
