package model

// Asset is a file in the backend's asset storage.
type Asset struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	Size        int64     `json:"size,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	IsFolder    bool      `json:"is_folder,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}
