// internal/pratica/model.go
package pratica

import (
	"time"

	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
	"gorm.io/gorm"
)

// Stati ammessi per una pratica.
const (
	StatoInCorso    = "In Corso"
	StatoCompletata = "Completata"
)

// StepLegacy è la vecchia forma piatta "steps" dei record storici:
// un testo libero, un flag di completamento e l'eventuale importo lordo
// di pagamento. Viene letta in migrazione e nel fallback di aggregazione,
// mai scritta.
type StepLegacy struct {
	Note          string  `json:"note,omitempty"`
	Completed     bool    `json:"completed,omitempty"`
	CompletedDate string  `json:"completedDate,omitempty"`
	Importo       float64 `json:"importo,omitempty"`
}

// StepsLegacy è la mappa step-id → StepLegacy dei record pre-workflow.
type StepsLegacy map[string]StepLegacy

// Pratica è il fascicolo di una pratica dello studio: anagrafica,
// importi con maggiorazioni e stato del flusso per step. Il workflow e
// l'eventuale forma legacy vivono in colonne JSONB, un documento per
// pratica.
type Pratica struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Codice    string `gorm:"size:100;index" json:"codice"`
	Indirizzo string `json:"indirizzo"`
	Cliente   string `json:"cliente"`
	Agenzia   string `json:"agenzia"`

	Collaboratore string `json:"collaboratore"`
	// Variante privata: secondo collaboratore firmatario, pagato a parte.
	CollaboratoreFirmatario string `json:"collaboratoreFirmatario,omitempty"`

	// Importi committente: base + flag maggiorazioni, lordo derivato.
	ImportoBaseCommittente float64 `json:"importoBaseCommittente"`
	ApplyCassaCommittente  bool    `json:"applyCassaCommittente"`
	ApplyIVACommittente    bool    `json:"applyIVACommittente"`
	ImportoTotale          float64 `json:"importoTotale"`

	// Importi collaboratore: solo cassa, mai IVA.
	ImportoBaseCollaboratore float64 `json:"importoBaseCollaboratore"`
	ApplyCassaCollaboratore  bool    `json:"applyCassaCollaboratore"`
	ImportoCollaboratore     float64 `json:"importoCollaboratore"`

	// Importi firmatario (variante privata).
	ImportoBaseFirmatario float64 `json:"importoBaseFirmatario,omitempty"`
	ApplyCassaFirmatario  bool    `json:"applyCassaFirmatario,omitempty"`
	ImportoFirmatario     float64 `json:"importoFirmatario,omitempty"`

	DataInizio string `json:"dataInizio"`
	DataFine   string `json:"dataFine,omitempty"`

	Stato string `gorm:"size:50;index" json:"stato"`

	Workflow workflow.Stato `gorm:"type:jsonb;serializer:json" json:"workflow,omitempty"`
	Steps    StepsLegacy    `gorm:"type:jsonb;serializer:json" json:"steps,omitempty"`
}

// Migrate crea la tabella nel database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pratica{})
}
