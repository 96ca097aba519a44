// internal/tariffario/model.go
package tariffario

import "gorm.io/gorm"

// VoceTariffario è una voce del listino prestazioni dello studio.
// L'importo è l'imponibile: le maggiorazioni si applicano in pratica.
type VoceTariffario struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Descrizione string  `gorm:"size:255;not null" json:"descrizione"`
	Categoria   string  `gorm:"size:100" json:"categoria"`
	Importo     float64 `gorm:"not null;default:0" json:"importo"`
	Attiva      bool    `gorm:"not null;default:true" json:"attiva"`
}

// Migrate crea la tabella nel database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&VoceTariffario{})
}
