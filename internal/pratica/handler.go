// internal/pratica/handler.go
package pratica

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/StudioBattaglia/api-pratiche/internal/automazione"
	"github.com/StudioBattaglia/api-pratiche/internal/importi"
	"github.com/StudioBattaglia/api-pratiche/internal/notifiche"
	"github.com/StudioBattaglia/api-pratiche/internal/utils"
	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler incapsula DB, repository e i collaboratori del dominio pratiche.
// Regole, Notifica e Adesso sono iniettabili per i test.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Regole     func() automazione.Regolamento
	Notifica   func(codice string, attivita []workflow.Attivita)
	Adesso     func() time.Time

	validate *validator.Validate
}

// NewHandler crea un handler con il cablaggio di produzione.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Regole:     func() automazione.Regolamento { return automazione.CaricaRegolamento(db) },
		Notifica:   notifiche.InviaAlertaScadenze,
		Adesso:     time.Now,
		validate:   validator.New(),
	}
}

func (h *Handler) contestoDi(p *Pratica) automazione.Contesto {
	return automazione.Contesto{
		Codice:        p.Codice,
		Cliente:       p.Cliente,
		Indirizzo:     p.Indirizzo,
		Agenzia:       p.Agenzia,
		Collaboratore: p.Collaboratore,
		DataFine:      p.DataFine,
	}
}

// accodaGenerate mette le attività generate dalle regole in coda alle
// attività di inizio pratica.
func accodaGenerate(p *Pratica, generate []workflow.Attivita) {
	if len(generate) == 0 {
		return
	}
	st := p.Workflow[workflow.StepInizioPratica]
	if st == nil {
		st = &workflow.StatoStep{Tasks: []workflow.Attivita{}}
		p.Workflow[workflow.StepInizioPratica] = st
	}
	st.Tasks = append(st.Tasks, generate...)
}

func ricalcolaImporti(p *Pratica) {
	p.ImportoTotale = importi.TotaleCommittente(p.ImportoBaseCommittente, p.ApplyCassaCommittente, p.ApplyIVACommittente)
	p.ImportoCollaboratore = importi.TotaleCollaboratore(p.ImportoBaseCollaboratore, p.ApplyCassaCollaboratore)
	p.ImportoFirmatario = importi.TotaleCollaboratore(p.ImportoBaseFirmatario, p.ApplyCassaFirmatario)
}

/* ============================== CRUD ============================== */

// POST /pratiche
func (h *Handler) Crea(w http.ResponseWriter, r *http.Request) {
	var dto CreaPraticaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	// la validazione precede qualsiasi scrittura sullo store
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "Campi obbligatori mancanti o non validi: "+err.Error(), http.StatusBadRequest)
		return
	}

	p := Pratica{
		Codice:                   dto.Codice,
		Indirizzo:                dto.Indirizzo,
		Cliente:                  dto.Cliente,
		Agenzia:                  dto.Agenzia,
		Collaboratore:            dto.Collaboratore,
		CollaboratoreFirmatario:  dto.CollaboratoreFirmatario,
		ImportoBaseCommittente:   dto.ImportoBaseCommittente,
		ApplyCassaCommittente:    dto.ApplyCassaCommittente,
		ApplyIVACommittente:      dto.ApplyIVACommittente,
		ImportoBaseCollaboratore: dto.ImportoBaseCollaboratore,
		ApplyCassaCollaboratore:  dto.ApplyCassaCollaboratore,
		ImportoBaseFirmatario:    dto.ImportoBaseFirmatario,
		ApplyCassaFirmatario:     dto.ApplyCassaFirmatario,
		DataInizio:               dto.DataInizio,
		DataFine:                 dto.DataFine,
		Stato:                    StatoInCorso,
		Workflow:                 workflow.NuovoStato(),
	}
	if p.DataInizio == "" {
		p.DataInizio = utils.FormatData(h.Adesso())
	}
	ricalcolaImporti(&p)

	if err := h.Repository.Salva(h.DB, &p); err != nil {
		http.Error(w, "Errore salvando la pratica", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /pratiche
func (h *Handler) Lista(w http.ResponseWriter, r *http.Request) {
	pratiche, err := h.Repository.ListaTutte(h.DB)
	if err != nil {
		http.Error(w, "Errore leggendo le pratiche", http.StatusInternalServerError)
		return
	}

	// migrazione pigra in lettura: lo store non viene riscritto
	for i := range pratiche {
		Migra(&pratiche[i])
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pratiche)
}

// GET /pratiche/{id}
func (h *Handler) TrovaPorID(w http.ResponseWriter, r *http.Request) {
	p, ok := h.caricaPratica(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /pratiche/{id}
func (h *Handler) Aggiorna(w http.ResponseWriter, r *http.Request) {
	p, ok := h.caricaPratica(w, r)
	if !ok {
		return
	}

	var dto AggiornaPraticaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "Campi non validi: "+err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Stato != "" && dto.Stato != StatoInCorso && dto.Stato != StatoCompletata {
		http.Error(w, "Stato non valido: usare 'In Corso' o 'Completata'", http.StatusBadRequest)
		return
	}

	p.Codice = dto.Codice
	p.Indirizzo = dto.Indirizzo
	p.Cliente = dto.Cliente
	p.Agenzia = dto.Agenzia
	p.Collaboratore = dto.Collaboratore
	p.CollaboratoreFirmatario = dto.CollaboratoreFirmatario
	p.ImportoBaseCommittente = dto.ImportoBaseCommittente
	p.ApplyCassaCommittente = dto.ApplyCassaCommittente
	p.ApplyIVACommittente = dto.ApplyIVACommittente
	p.ImportoBaseCollaboratore = dto.ImportoBaseCollaboratore
	p.ApplyCassaCollaboratore = dto.ApplyCassaCollaboratore
	p.ImportoBaseFirmatario = dto.ImportoBaseFirmatario
	p.ApplyCassaFirmatario = dto.ApplyCassaFirmatario
	p.DataInizio = dto.DataInizio
	p.DataFine = dto.DataFine
	if dto.Stato != "" {
		p.Stato = dto.Stato
	}
	ricalcolaImporti(p)

	if err := h.Repository.Salva(h.DB, p); err != nil {
		http.Error(w, "Errore aggiornando la pratica", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// DELETE /pratiche/{id}
func (h *Handler) Elimina(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Elimina(h.DB, uint(id)); err != nil {
		http.Error(w, "Errore eliminando la pratica", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ======================= Mutazioni per step ======================= */

// caricaPratica legge la pratica dal path e la porta alla forma corrente.
func (h *Handler) caricaPratica(w http.ResponseWriter, r *http.Request) (*Pratica, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID non valido", http.StatusBadRequest)
		return nil, false
	}
	p, err := h.Repository.TrovaPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pratica non trovata", http.StatusNotFound)
		} else {
			http.Error(w, "Errore leggendo la pratica", http.StatusInternalServerError)
		}
		return nil, false
	}
	return Migra(p), true
}

// caricaStep risolve pratica + step dal path. Dopo Migra ogni step con
// stato ha la sua voce nel workflow.
func (h *Handler) caricaStep(w http.ResponseWriter, r *http.Request) (*Pratica, workflow.StepDef, *workflow.StatoStep, bool) {
	p, ok := h.caricaPratica(w, r)
	if !ok {
		return nil, workflow.StepDef{}, nil, false
	}

	stepID := mux.Vars(r)["step"]
	def, ok := workflow.StepByID(stepID)
	if !ok {
		http.Error(w, "Step sconosciuto", http.StatusNotFound)
		return nil, workflow.StepDef{}, nil, false
	}
	st := p.Workflow[def.ID]
	if st == nil {
		http.Error(w, "Lo step non porta stato", http.StatusBadRequest)
		return nil, workflow.StepDef{}, nil, false
	}
	return p, def, st, true
}

func (h *Handler) salvaERispondi(w http.ResponseWriter, p *Pratica, status int, body any) {
	if err := h.Repository.Salva(h.DB, p); err != nil {
		http.Error(w, "Errore salvando la pratica", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// POST /pratiche/{id}/workflow/{step}/attivita
func (h *Handler) AggiungiAttivita(w http.ResponseWriter, r *http.Request) {
	p, def, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}
	if def.Tipo != workflow.TipoAttivita && def.Tipo != workflow.TipoNota {
		http.Error(w, "Lo step non supporta attività", http.StatusBadRequest)
		return
	}

	var req aggiungiAttivitaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Testo attività obbligatorio", http.StatusBadRequest)
		return
	}

	att := workflow.Attivita{
		ID:          uuid.NewString(),
		Text:        req.Text,
		CreatedDate: utils.FormatData(h.Adesso()),
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}
	st.Tasks = append(st.Tasks, att)

	h.salvaERispondi(w, p, http.StatusCreated, att)
}

// PATCH /pratiche/{id}/workflow/{step}/attivita/{tid}
func (h *Handler) AggiornaAttivita(w http.ResponseWriter, r *http.Request) {
	p, _, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}

	var req aggiornaAttivitaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}

	tid := mux.Vars(r)["tid"]
	idx := -1
	for i := range st.Tasks {
		if st.Tasks[i].ID == tid {
			idx = i
			break
		}
	}
	if idx < 0 {
		http.Error(w, "Attività non trovata", http.StatusNotFound)
		return
	}

	if req.Text != nil {
		st.Tasks[idx].Text = *req.Text
	}
	if req.Completed != nil {
		st.Tasks[idx].Completed = *req.Completed
		if *req.Completed {
			st.Tasks[idx].CompletedDate = utils.FormatData(h.Adesso())
		} else {
			st.Tasks[idx].CompletedDate = ""
		}
	}

	h.salvaERispondi(w, p, http.StatusOK, st.Tasks[idx])
}

// DELETE /pratiche/{id}/workflow/{step}/attivita/{tid}
func (h *Handler) EliminaAttivita(w http.ResponseWriter, r *http.Request) {
	p, _, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}

	tid := mux.Vars(r)["tid"]
	for i := range st.Tasks {
		if st.Tasks[i].ID == tid {
			st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
			if err := h.Repository.Salva(h.DB, p); err != nil {
				http.Error(w, "Errore salvando la pratica", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "Attività non trovata", http.StatusNotFound)
}

// POST /pratiche/{id}/workflow/{step}/note
func (h *Handler) AggiungiNota(w http.ResponseWriter, r *http.Request) {
	p, def, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}
	if def.Tipo != workflow.TipoNota && def.Tipo != workflow.TipoAttivita {
		http.Error(w, "Lo step non supporta note", http.StatusBadRequest)
		return
	}

	var req aggiungiNotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Testo nota obbligatorio", http.StatusBadRequest)
		return
	}

	nota := workflow.Nota{Text: req.Text, Date: utils.FormatData(h.Adesso())}
	st.Notes = append(st.Notes, nota)

	h.salvaERispondi(w, p, http.StatusCreated, nota)
}

// PATCH /pratiche/{id}/workflow/{step}/checklist/{item}
// A checklist completa scatta il trigger accessoAtti.
func (h *Handler) AggiornaChecklist(w http.ResponseWriter, r *http.Request) {
	p, def, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}
	if def.Tipo != workflow.TipoChecklist {
		http.Error(w, "Lo step non è una checklist", http.StatusBadRequest)
		return
	}

	item := mux.Vars(r)["item"]
	configurata := false
	for _, voce := range def.VociChecklist {
		if voce.ID == item {
			configurata = true
			break
		}
	}
	if !configurata {
		http.Error(w, "Voce di checklist sconosciuta", http.StatusBadRequest)
		return
	}

	var req aggiornaChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}

	eraCompleta := st.ChecklistCompleta(def)
	voce := workflow.VoceChecklistStato{Completed: req.Completed}
	if req.Completed {
		voce.Date = utils.FormatData(h.Adesso())
	}
	st.Checklist[item] = voce

	if !eraCompleta && st.ChecklistCompleta(def) {
		generate := automazione.GeneraAttivita(h.Regole(), h.contestoDi(p),
			automazione.TriggerAccessoAtti, automazione.DatiTrigger{}, h.Adesso())
		accodaGenerate(p, generate)
	}

	h.salvaERispondi(w, p, http.StatusOK, st)
}

// PATCH /pratiche/{id}/workflow/{step}/invio
// Sull'incarico la data impostata fa scattare il trigger incarico.
func (h *Handler) ImpostaInvio(w http.ResponseWriter, r *http.Request) {
	p, def, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}
	if def.Tipo != workflow.TipoData {
		http.Error(w, "Lo step non è uno step data", http.StatusBadRequest)
		return
	}

	var req impostaInvioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "dataInvio obbligatoria", http.StatusBadRequest)
		return
	}

	st.DataInvio = req.DataInvio
	st.OraInvio = req.OraInvio
	st.DataOraInvio = req.DataInvio
	if req.OraInvio != "" {
		st.DataOraInvio = req.DataInvio + "T" + req.OraInvio + ":00"
	}

	if def.ID == workflow.StepIncarico {
		generate := automazione.GeneraAttivita(h.Regole(), h.contestoDi(p),
			automazione.TriggerIncarico,
			automazione.DatiTrigger{DataOraInvio: st.DataOraInvio}, h.Adesso())
		accodaGenerate(p, generate)
	}

	h.salvaERispondi(w, p, http.StatusOK, st)
}

// PATCH /pratiche/{id}/workflow/{step}/pagamento
// I lordi per parte vengono ricalcolati; al completamento scatta il
// trigger pagamento.
func (h *Handler) AggiornaPagamento(w http.ResponseWriter, r *http.Request) {
	p, def, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}
	if def.Tipo != workflow.TipoPagamento {
		http.Error(w, "Lo step non è un pagamento", http.StatusBadRequest)
		return
	}

	var req aggiornaPagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Importi non validi", http.StatusBadRequest)
		return
	}

	st.ImportoBaseCommittente = req.ImportoBaseCommittente
	st.ApplyCassaCommittente = req.ApplyCassaCommittente
	st.ApplyIVACommittente = req.ApplyIVACommittente
	st.ImportoCommittente = importi.TotaleCommittente(req.ImportoBaseCommittente, req.ApplyCassaCommittente, req.ApplyIVACommittente)

	st.ImportoBaseCollaboratore = req.ImportoBaseCollaboratore
	st.ApplyCassaCollaboratore = req.ApplyCassaCollaboratore
	st.ImportoCollaboratore = importi.TotaleCollaboratore(req.ImportoBaseCollaboratore, req.ApplyCassaCollaboratore)

	st.ImportoBaseFirmatario = req.ImportoBaseFirmatario
	st.ApplyCassaFirmatario = req.ApplyCassaFirmatario
	st.ImportoFirmatario = importi.TotaleCollaboratore(req.ImportoBaseFirmatario, req.ApplyCassaFirmatario)

	if req.Completed && !st.Completed {
		st.Completed = true
		st.CompletedDate = utils.FormatData(h.Adesso())
		generate := automazione.GeneraAttivita(h.Regole(), h.contestoDi(p),
			automazione.TriggerPagamento,
			automazione.DatiTrigger{ImportoCollaboratore: st.ImportoCollaboratore}, h.Adesso())
		accodaGenerate(p, generate)
	} else if !req.Completed && st.Completed {
		st.Completed = false
		st.CompletedDate = ""
	}

	h.salvaERispondi(w, p, http.StatusOK, st)
}

// PATCH /pratiche/{id}/workflow/{step}/completa
func (h *Handler) CompletaStep(w http.ResponseWriter, r *http.Request) {
	p, _, st, ok := h.caricaStep(w, r)
	if !ok {
		return
	}

	var req completaStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON malformato", http.StatusBadRequest)
		return
	}

	st.Completed = req.Completed
	if req.Completed {
		st.CompletedDate = utils.FormatData(h.Adesso())
	} else {
		st.CompletedDate = ""
	}

	h.salvaERispondi(w, p, http.StatusOK, st)
}

// POST /pratiche/{id}/scan-scadenze
// Valuta le regole di scadenza rispetto a dataFine; le attività urgenti
// vanno anche al webhook.
func (h *Handler) ScanScadenze(w http.ResponseWriter, r *http.Request) {
	p, ok := h.caricaPratica(w, r)
	if !ok {
		return
	}

	generate := automazione.GeneraAttivita(h.Regole(), h.contestoDi(p),
		automazione.TriggerScadenza, automazione.DatiTrigger{}, h.Adesso())

	// scan ripetuti non devono duplicare: una regola con un'attività
	// generata ancora aperta viene saltata
	aperte := map[string]bool{}
	if st := p.Workflow[workflow.StepInizioPratica]; st != nil {
		for _, att := range st.Tasks {
			if att.AutoCreated && !att.Completed && att.RuleID != "" {
				aperte[att.RuleID] = true
			}
		}
	}
	nuove := []workflow.Attivita{}
	for _, att := range generate {
		if !aperte[att.RuleID] {
			nuove = append(nuove, att)
		}
	}
	generate = nuove
	accodaGenerate(p, generate)

	var urgenti []workflow.Attivita
	for _, att := range generate {
		if att.Priority == automazione.PrioritaAlta {
			urgenti = append(urgenti, att)
		}
	}
	if len(urgenti) > 0 && h.Notifica != nil {
		h.Notifica(p.Codice, urgenti)
	}

	h.salvaERispondi(w, p, http.StatusOK, generate)
}
