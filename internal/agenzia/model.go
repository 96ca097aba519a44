package agenzia

import (
	"time"

	"gorm.io/gorm"
)

// Agenzia è l'agenzia immobiliare che porta pratiche allo studio. Le
// pratiche senza agenzia usano il valore sentinella "PRIVATO".
type Agenzia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:100;uniqueIndex;not null" json:"nome"`
	Email     string    `gorm:"size:100" json:"email"`
	Telefono  string    `gorm:"size:20" json:"telefono"`
	Citta     string    `gorm:"size:100" json:"citta"`
	Referente string    `gorm:"size:100" json:"referente"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate crea la tabella nel database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Agenzia{})
}
