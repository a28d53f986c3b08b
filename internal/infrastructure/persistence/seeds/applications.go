package seeds

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/infrastructure/persistence/models"
)

// DefaultApplications are created by `migrate up --seed`.
var DefaultApplications = []string{"General", "Website", "Internal Tools"}

// SeedApplications inserts the default applications, skipping slugs that
// already exist.
func SeedApplications(db *gorm.DB, names ...string) error {
	if len(names) == 0 {
		names = DefaultApplications
	}
	rows := make([]models.ApplicationModel, 0, len(names))
	for _, name := range names {
		app, err := ticket.NewApplication(name)
		if err != nil {
			return err
		}
		rows = append(rows, models.ApplicationModel{Name: app.Name(), Slug: app.Slug()})
	}
	return db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&rows).Error
}
