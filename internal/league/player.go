package league

import "time"

type PlayerType string

const (
	PlayerStudent PlayerType = "student"
	PlayerTeacher PlayerType = "teacher"
)

type Player struct {
	ID        string     `db:"id" json:"id"`
	FullName  string     `db:"full_name" json:"fullName"`
	NameKey   string     `db:"name_key" json:"nameKey"`
	Type      PlayerType `db:"type" json:"type"`
	PhotoURL  *string    `db:"photo_url" json:"photoUrl,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
