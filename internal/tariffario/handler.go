// internal/tariffario/handler.go
package tariffario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /tariffario
func (h *Handler) Crea(w http.ResponseWriter, r *http.Request) {
	var v VoceTariffario
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if v.Descrizione == "" {
		http.Error(w, "Descrizione obbligatoria", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Crea(&v); err != nil {
		http.Error(w, "Errore inserendo la voce", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /tariffario
func (h *Handler) Lista(w http.ResponseWriter, r *http.Request) {
	voci, err := h.Repo.ListaTutte()
	if err != nil {
		http.Error(w, "Errore leggendo il tariffario", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(voci)
}

// PUT /tariffario/{id}
func (h *Handler) Aggiorna(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	esistente, err := h.Repo.TrovaPorID(uint(id))
	if err != nil {
		http.Error(w, "Voce non trovata", http.StatusNotFound)
		return
	}

	var dati VoceTariffario
	if err := json.NewDecoder(r.Body).Decode(&dati); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}

	esistente.Descrizione = dati.Descrizione
	esistente.Categoria = dati.Categoria
	esistente.Importo = dati.Importo
	esistente.Attiva = dati.Attiva

	if err := h.Repo.Aggiorna(esistente); err != nil {
		http.Error(w, "Errore aggiornando la voce", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(esistente)
}

// DELETE /tariffario/{id}
func (h *Handler) Elimina(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	esistente, err := h.Repo.TrovaPorID(uint(id))
	if err != nil {
		http.Error(w, "Voce non trovata", http.StatusNotFound)
		return
	}

	if err := h.Repo.Elimina(esistente); err != nil {
		http.Error(w, "Errore eliminando la voce", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
