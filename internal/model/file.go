package model

// File stores an uploaded blob (resume documents) with its extension so the
// download handler can set a sensible content type. The resume store hands
// out /api/v1/file/<id> URLs pointing at these rows.
type File struct {
	ID        int `gorm:"primaryKey" json:"id"`
	Content   []byte
	Extension string
}
