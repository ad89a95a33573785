package league

import "time"

type DataSource string

const (
	SourceLive        DataSource = "live"
	SourceLegacyFixed DataSource = "legacy-fixed"
)

type Season struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	StartDate  string     `db:"start_date" json:"startDate"`
	IsActive   bool       `db:"is_active" json:"isActive"`
	DataSource DataSource `db:"data_source" json:"dataSource"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// ActiveSeason returns the season flagged active, falling back to the
// first season in list order. Nil when the list is empty.
func ActiveSeason(seasons []Season) *Season {
	if len(seasons) == 0 {
		return nil
	}
	for i := range seasons {
		if seasons[i].IsActive {
			return &seasons[i]
		}
	}
	return &seasons[0]
}
