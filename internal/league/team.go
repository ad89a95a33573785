package league

import "time"

type Team struct {
	ID        string    `db:"id" json:"id"`
	SeasonID  string    `db:"season_id" json:"seasonId"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	LogoFile  *string   `db:"logo_file" json:"logoFile,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
