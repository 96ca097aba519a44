// internal/automazione/model.go
package automazione

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// RegolaOverride è la configurazione persistita di una regola: solo i
// campi regolabili a runtime. Testo e condizione restano codice e si
// riagganciano per id al caricamento.
type RegolaOverride struct {
	ID        string    `gorm:"primaryKey;size:100" json:"id"`
	Abilitata bool      `json:"abilitata"`
	Giorni    int       `json:"giorni"`
	Priorita  string    `gorm:"size:20" json:"priorita"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate crea la tabella delle override.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RegolaOverride{})
}

// ApplicaOverride fonde le override persistite sulla tabella di fabbrica.
// Override con id sconosciuto vengono ignorate (regola rimossa dal codice).
func ApplicaOverride(reg Regolamento, overrides []RegolaOverride) Regolamento {
	byID := make(map[string]RegolaOverride, len(overrides))
	for _, ov := range overrides {
		byID[ov.ID] = ov
	}

	out := make(Regolamento, len(reg))
	copy(out, reg)
	for i := range out {
		ov, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		out[i].Abilitata = ov.Abilitata
		out[i].Giorni = ov.Giorni
		if ov.Priorita != "" {
			out[i].Priorita = ov.Priorita
		}
	}
	return out
}

// CaricaRegolamento legge le override dal database e le applica ai
// default. In caso di errore di lettura si procede con i default: la
// generazione di attività non deve fallire per un problema di config.
func CaricaRegolamento(db *gorm.DB) Regolamento {
	var overrides []RegolaOverride
	if err := db.Find(&overrides).Error; err != nil {
		log.Printf("automazione: errore caricando le override, uso i default: %v", err)
		return RegoleDefault()
	}
	return ApplicaOverride(RegoleDefault(), overrides)
}
