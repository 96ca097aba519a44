package agenzia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /agenzie
func (h *Handler) Crea(w http.ResponseWriter, r *http.Request) {
	var a Agenzia
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if a.Nome == "" {
		http.Error(w, "Nome obbligatorio", http.StatusBadRequest)
		return
	}

	if err := h.DB.Create(&a).Error; err != nil {
		http.Error(w, "Errore salvando l'agenzia", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// GET /agenzie
func (h *Handler) Lista(w http.ResponseWriter, r *http.Request) {
	var agenzie []Agenzia
	if err := h.DB.Order("nome").Find(&agenzie).Error; err != nil {
		http.Error(w, "Errore leggendo le agenzie", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(agenzie)
}

// GET /agenzie/{id}
func (h *Handler) TrovaPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	var a Agenzia
	if err := h.DB.First(&a, id).Error; err != nil {
		http.Error(w, "Agenzia non trovata", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// PUT /agenzie/{id}
func (h *Handler) Aggiorna(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	var esistente Agenzia
	if err := h.DB.First(&esistente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Agenzia non trovata", http.StatusNotFound)
			return
		}
		http.Error(w, "Errore leggendo l'agenzia", http.StatusInternalServerError)
		return
	}

	var dati Agenzia
	if err := json.NewDecoder(r.Body).Decode(&dati); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}

	esistente.Nome = dati.Nome
	esistente.Email = dati.Email
	esistente.Telefono = dati.Telefono
	esistente.Citta = dati.Citta
	esistente.Referente = dati.Referente

	if err := h.DB.Save(&esistente).Error; err != nil {
		http.Error(w, "Errore aggiornando l'agenzia", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(esistente)
}

// DELETE /agenzie/{id}
func (h *Handler) Elimina(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}

	if err := h.DB.Delete(&Agenzia{}, id).Error; err != nil {
		http.Error(w, "Errore eliminando l'agenzia", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
