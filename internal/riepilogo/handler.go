// internal/riepilogo/handler.go
package riepilogo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/StudioBattaglia/api-pratiche/internal/pratica"
	"gorm.io/gorm"
)

// Handler espone il riepilogo finanziario dello studio.
type Handler struct {
	DB         *gorm.DB
	Repository pratica.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: pratica.NewRepository()}
}

// GET /riepilogo?anno=&mese=&stato=
func (h *Handler) Riepilogo(w http.ResponseWriter, r *http.Request) {
	var f Filtri
	q := r.URL.Query()
	if v := q.Get("anno"); v != "" {
		anno, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Parametro 'anno' non valido", http.StatusBadRequest)
			return
		}
		f.Anno = anno
	}
	if v := q.Get("mese"); v != "" {
		mese, err := strconv.Atoi(v)
		if err != nil || mese < 1 || mese > 12 {
			http.Error(w, "Parametro 'mese' non valido (1-12)", http.StatusBadRequest)
			return
		}
		f.Mese = mese
	}
	f.Stato = q.Get("stato")

	pratiche, err := h.Repository.ListaTutte(h.DB)
	if err != nil {
		http.Error(w, "Errore leggendo le pratiche", http.StatusInternalServerError)
		return
	}

	// upgrade in lettura: l'aggregazione lavora sulla forma corrente
	for i := range pratiche {
		pratica.Migra(&pratiche[i])
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Aggrega(pratiche, f))
}
