package model

// MediaItem is a gallery photo or video.
type MediaItem struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	URL        string    `json:"file_url"`
	Thumbnail  string    `json:"thumbnail_url,omitempty"`
	MediaType  string    `json:"media_type,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  Timestamp `json:"created_at"`
}

// EventDocument is a file shared in the documents tab.
type EventDocument struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Title      string    `json:"title"`
	URL        string    `json:"file_url"`
	FileType   string    `json:"file_type,omitempty"`
	SizeBytes  int64     `json:"file_size,omitempty"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  Timestamp `json:"created_at"`
}

// EventLink is a bookmarked URL.
type EventLink struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	AddedBy   string    `json:"added_by,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Professional is a vendor (photographer, caterer, ...) attached to an event.
type Professional struct {
	ID        string  `json:"id"`
	EventID   string  `json:"event_id,omitempty"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	Website   string  `json:"website,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	Confirmed bool    `json:"is_confirmed,omitempty"`
}

// Message is a chat message or an announcement in the updates tab.
type Message struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Kind      string    `json:"message_type,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}
