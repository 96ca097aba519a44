// internal/automazione/handler.go
package automazione

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler espone la tabella delle regole con le override applicate.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Vista di una regola verso il client (testo e condizione non sono
// serializzabili).
type regolaDTO struct {
	ID        string `json:"id"`
	Trigger   string `json:"trigger"`
	Abilitata bool   `json:"abilitata"`
	Giorni    int    `json:"giorni"`
	Priorita  string `json:"priorita"`
}

type aggiornaRegolaRequest struct {
	Abilitata bool   `json:"abilitata"`
	Giorni    int    `json:"giorni"`
	Priorita  string `json:"priorita"`
}

// GET /regole
func (h *Handler) Lista(w http.ResponseWriter, r *http.Request) {
	reg := CaricaRegolamento(h.DB)

	out := make([]regolaDTO, 0, len(reg))
	for _, regola := range reg {
		out = append(out, regolaDTO{
			ID:        regola.ID,
			Trigger:   string(regola.Trigger),
			Abilitata: regola.Abilitata,
			Giorni:    regola.Giorni,
			Priorita:  regola.Priorita,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// PUT /regole/{id}
func (h *Handler) Aggiorna(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	trovata := false
	for _, regola := range RegoleDefault() {
		if regola.ID == id {
			trovata = true
			break
		}
	}
	if !trovata {
		http.Error(w, "Regola non trovata", http.StatusNotFound)
		return
	}

	var req aggiornaRegolaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if req.Priorita != "" && req.Priorita != PrioritaAlta && req.Priorita != PrioritaNormale {
		http.Error(w, "Priorità non valida: usare 'alta' o 'normale'", http.StatusBadRequest)
		return
	}

	ov := RegolaOverride{
		ID:        id,
		Abilitata: req.Abilitata,
		Giorni:    req.Giorni,
		Priorita:  req.Priorita,
	}
	if err := h.DB.Save(&ov).Error; err != nil {
		http.Error(w, "Errore salvando la configurazione della regola", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ov)
}
