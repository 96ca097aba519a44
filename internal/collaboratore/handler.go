package collaboratore

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler incapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /collaboratori
func (h *Handler) Crea(w http.ResponseWriter, r *http.Request) {
	var c Collaboratore
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if c.Nome == "" {
		http.Error(w, "Nome obbligatorio", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Salva(h.DB, &c); err != nil {
		http.Error(w, "Errore salvando il collaboratore", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /collaboratori
func (h *Handler) Lista(w http.ResponseWriter, r *http.Request) {
	collaboratori, err := h.Repository.ListaTutti(h.DB)
	if err != nil {
		http.Error(w, "Errore leggendo i collaboratori", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(collaboratori)
}

// GET /collaboratori/{id}
func (h *Handler) TrovaPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.TrovaPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Collaboratore non trovato", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /collaboratori/{id}
func (h *Handler) Aggiorna(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	var dati Collaboratore
	if err := json.NewDecoder(r.Body).Decode(&dati); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Aggiorna(h.DB, uint(id), &dati); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Collaboratore non trovato", http.StatusNotFound)
			return
		}
		http.Error(w, "Errore aggiornando il collaboratore", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("collaboratore aggiornato"))
}

// DELETE /collaboratori/{id}
func (h *Handler) Elimina(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Elimina(h.DB, uint(id)); err != nil {
		http.Error(w, "Errore eliminando il collaboratore", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
