package collaboratore

import (
	"time"

	"gorm.io/gorm"
)

// Collaboratore è il professionista esterno a cui lo studio gira una
// quota della pratica. Firmatario marca chi può firmare le pratiche
// della variante privata.
type Collaboratore struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Nome           string    `gorm:"size:100;not null" json:"nome"`
	Cognome        string    `gorm:"size:100" json:"cognome"`
	Email          string    `gorm:"size:100;uniqueIndex" json:"email"`
	Telefono       string    `gorm:"size:20" json:"telefono"`
	CodiceFiscale  string    `gorm:"size:16" json:"codiceFiscale"`
	PartitaIVA     string    `gorm:"size:11" json:"partitaIVA"`
	Qualifica      string    `gorm:"size:100" json:"qualifica"`
	Firmatario     bool      `gorm:"default:false" json:"firmatario"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Migrate crea la tabella nel database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Collaboratore{})
}
