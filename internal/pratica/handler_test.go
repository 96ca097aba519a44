package pratica

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/StudioBattaglia/api-pratiche/internal/automazione"
	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var adessoTest = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type ambiente struct {
	handler   *Handler
	router    *mux.Router
	notifiche [][]workflow.Attivita
}

func nuovoAmbiente(t *testing.T) *ambiente {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Pratica{}))

	amb := &ambiente{}
	amb.handler = &Handler{
		DB:         db,
		Repository: NewRepository(),
		Regole:     automazione.RegoleDefault,
		Notifica: func(_ string, attivita []workflow.Attivita) {
			amb.notifiche = append(amb.notifiche, attivita)
		},
		Adesso:   func() time.Time { return adessoTest },
		validate: validator.New(),
	}

	r := mux.NewRouter()
	h := amb.handler
	r.HandleFunc("/pratiche", h.Crea).Methods("POST")
	r.HandleFunc("/pratiche", h.Lista).Methods("GET")
	r.HandleFunc("/pratiche/{id}", h.TrovaPorID).Methods("GET")
	r.HandleFunc("/pratiche/{id}", h.Aggiorna).Methods("PUT")
	r.HandleFunc("/pratiche/{id}", h.Elimina).Methods("DELETE")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/attivita", h.AggiungiAttivita).Methods("POST")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/attivita/{tid}", h.AggiornaAttivita).Methods("PATCH")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/attivita/{tid}", h.EliminaAttivita).Methods("DELETE")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/note", h.AggiungiNota).Methods("POST")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/checklist/{item}", h.AggiornaChecklist).Methods("PATCH")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/invio", h.ImpostaInvio).Methods("PATCH")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/pagamento", h.AggiornaPagamento).Methods("PATCH")
	r.HandleFunc("/pratiche/{id}/workflow/{step}/completa", h.CompletaStep).Methods("PATCH")
	r.HandleFunc("/pratiche/{id}/scan-scadenze", h.ScanScadenze).Methods("POST")
	amb.router = r

	return amb
}

func (a *ambiente) chiama(t *testing.T, metodo, url string, corpo any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if corpo != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(corpo))
	}
	req := httptest.NewRequest(metodo, url, &body)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *ambiente) creaPratica(t *testing.T, dto CreaPraticaDTO) Pratica {
	t.Helper()
	rec := a.chiama(t, http.MethodPost, "/pratiche", dto)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p Pratica
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func dtoBase() CreaPraticaDTO {
	return CreaPraticaDTO{
		Codice:                 "PR-2024-001",
		Indirizzo:              "Via Roma 12, Milano",
		Cliente:                "Rossi Mario",
		Collaboratore:          "Bianchi",
		ImportoBaseCommittente: 1000,
		ApplyCassaCommittente:  true,
		ApplyIVACommittente:    true,
	}
}

func TestCreaCalcolaLordoEWorkflow(t *testing.T) {
	amb := nuovoAmbiente(t)

	p := amb.creaPratica(t, dtoBase())

	assert.Equal(t, 1281.0, p.ImportoTotale)
	assert.Equal(t, StatoInCorso, p.Stato)
	assert.Equal(t, "2024-05-01T10:00:00Z", p.DataInizio)
	// workflow inizializzato per tutti gli step con stato
	require.NotNil(t, p.Workflow)
	assert.Contains(t, p.Workflow, workflow.StepInizioPratica)
	assert.Contains(t, p.Workflow, workflow.StepSaldo)
	assert.NotContains(t, p.Workflow, workflow.StepIntestazione)
}

func TestCreaValidazione(t *testing.T) {
	amb := nuovoAmbiente(t)

	dto := dtoBase()
	dto.Cliente = ""
	rec := amb.chiama(t, http.MethodPost, "/pratiche", dto)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	dto = dtoBase()
	dto.ImportoBaseCommittente = -5
	rec = amb.chiama(t, http.MethodPost, "/pratiche", dto)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// nessuna pratica scritta sullo store
	rec = amb.chiama(t, http.MethodGet, "/pratiche", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lista []Pratica
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lista))
	assert.Empty(t, lista)
}

func TestAggiornaStatoNonValido(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	dto := AggiornaPraticaDTO{Codice: "PR-2024-001", Stato: "Archiviata"}
	rec := amb.chiama(t, http.MethodPut, "/pratiche/1", dto)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPraticaNonTrovata(t *testing.T) {
	amb := nuovoAmbiente(t)

	rec := amb.chiama(t, http.MethodGet, "/pratiche/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAttivitaCicloDiVita(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	rec := amb.chiama(t, http.MethodPost,
		"/pratiche/1/workflow/inizioPratica/attivita",
		map[string]string{"text": "richiedere visure catastali"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var att workflow.Attivita
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &att))
	require.NotEmpty(t, att.ID)
	assert.False(t, att.Completed)

	// completamento
	completed := true
	rec = amb.chiama(t, http.MethodPatch,
		"/pratiche/1/workflow/inizioPratica/attivita/"+att.ID,
		map[string]*bool{"completed": &completed})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &att))
	assert.True(t, att.Completed)
	assert.NotEmpty(t, att.CompletedDate)

	// rimozione
	rec = amb.chiama(t, http.MethodDelete,
		"/pratiche/1/workflow/inizioPratica/attivita/"+att.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = amb.chiama(t, http.MethodDelete,
		"/pratiche/1/workflow/inizioPratica/attivita/"+att.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStepSconosciutoOSenzaStato(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	rec := amb.chiama(t, http.MethodPost,
		"/pratiche/1/workflow/stepInventato/attivita",
		map[string]string{"text": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = amb.chiama(t, http.MethodPost,
		"/pratiche/1/workflow/intestazione/attivita",
		map[string]string{"text": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChecklistCompletaScatenaTrigger(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	spunta := func(item string) *httptest.ResponseRecorder {
		return amb.chiama(t, http.MethodPatch,
			"/pratiche/1/workflow/accessoAtti/checklist/"+item,
			map[string]bool{"completed": true})
	}

	rec := spunta("delegaFirmata")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// checklist ancora incompleta: nessuna attività generata
	rec = amb.chiama(t, http.MethodGet, "/pratiche/1", nil)
	var p Pratica
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Empty(t, p.Workflow[workflow.StepInizioPratica].Tasks)

	rec = spunta("richiestaComune")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = amb.chiama(t, http.MethodGet, "/pratiche/1", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	tasks := p.Workflow[workflow.StepInizioPratica].Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "accesso-atti-verifica", tasks[0].RuleID)
	assert.True(t, tasks[0].AutoCreated)

	// voce sconosciuta
	rec = spunta("voceInventata")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChecklistSuRecordConMappaNulla(t *testing.T) {
	amb := nuovoAmbiente(t)

	// record scritto a mano: la voce accessoAtti esiste ma senza la
	// mappa checklist
	require.NoError(t, amb.handler.DB.Create(&Pratica{
		Codice:    "PR-LEG-001",
		Indirizzo: "Via Verdi 3, Torino",
		Cliente:   "Neri Luca",
		Stato:     StatoInCorso,
		Workflow: workflow.Stato{
			workflow.StepAccessoAtti: {},
		},
	}).Error)

	rec := amb.chiama(t, http.MethodPatch,
		"/pratiche/1/workflow/accessoAtti/checklist/delegaFirmata",
		map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var st workflow.StatoStep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.True(t, st.Checklist["delegaFirmata"].Completed)
	assert.False(t, st.Checklist["richiestaComune"].Completed)
}

func TestMutazioneSuVoceWorkflowNulla(t *testing.T) {
	amb := nuovoAmbiente(t)

	require.NoError(t, amb.handler.DB.Create(&Pratica{
		Codice:    "PR-LEG-002",
		Indirizzo: "Via Po 9, Torino",
		Cliente:   "Galli Anna",
		Stato:     StatoInCorso,
		Workflow: workflow.Stato{
			workflow.StepSopralluogo: nil,
		},
	}).Error)

	rec := amb.chiama(t, http.MethodPost,
		"/pratiche/1/workflow/sopralluogo/note",
		map[string]string{"text": "sopralluogo fissato"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestImpostaInvioIncaricoGeneraAttivita(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	rec := amb.chiama(t, http.MethodPatch,
		"/pratiche/1/workflow/incarico/invio",
		map[string]string{"dataInvio": "2024-05-10", "oraInvio": "14:30"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st workflow.StatoStep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "2024-05-10T14:30:00", st.DataOraInvio)

	rec = amb.chiama(t, http.MethodGet, "/pratiche/1", nil)
	var p Pratica
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	tasks := p.Workflow[workflow.StepInizioPratica].Tasks
	// agenzia assente: resta solo il follow-up
	require.Len(t, tasks, 1)
	assert.Equal(t, "incarico-followup", tasks[0].RuleID)
	assert.Equal(t, automazione.PrioritaAlta, tasks[0].Priority)
	// scadenza a +7 giorni dall'invio
	assert.Equal(t, "2024-05-17", tasks[0].DueDate[:10])
}

func TestAggiornaPagamentoRicalcolaLordi(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	corpo := map[string]any{
		"importoBaseCommittente":   1000,
		"applyCassaCommittente":    true,
		"applyIVACommittente":      true,
		"importoBaseCollaboratore": 500,
		"applyCassaCollaboratore":  true,
		"completed":                true,
	}
	rec := amb.chiama(t, http.MethodPatch,
		"/pratiche/1/workflow/acconto1/pagamento", corpo)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var st workflow.StatoStep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1281.0, st.ImportoCommittente)
	assert.Equal(t, 525.0, st.ImportoCollaboratore)
	assert.True(t, st.Completed)
	assert.NotEmpty(t, st.CompletedDate)

	// il completamento fa scattare le regole pagamento
	rec = amb.chiama(t, http.MethodGet, "/pratiche/1", nil)
	var p Pratica
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	ruleIDs := map[string]bool{}
	for _, att := range p.Workflow[workflow.StepInizioPratica].Tasks {
		ruleIDs[att.RuleID] = true
	}
	assert.True(t, ruleIDs["pagamento-verifica"])
	assert.True(t, ruleIDs["pagamento-collaboratore"])

	// il pagamento su step non di pagamento viene rifiutato
	rec = amb.chiama(t, http.MethodPatch,
		"/pratiche/1/workflow/sopralluogo/pagamento", corpo)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanScadenzeNotificaUrgenti(t *testing.T) {
	amb := nuovoAmbiente(t)
	dto := dtoBase()
	dto.DataFine = "2024-05-11" // a 10 giorni: resta solo la regola urgente
	amb.creaPratica(t, dto)

	rec := amb.chiama(t, http.MethodPost, "/pratiche/1/scan-scadenze", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var generate []workflow.Attivita
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generate))
	require.Len(t, generate, 1)
	assert.Equal(t, "scadenza-urgente", generate[0].RuleID)

	require.Len(t, amb.notifiche, 1)
	assert.Equal(t, "scadenza-urgente", amb.notifiche[0][0].RuleID)
}

func TestScanScadenzeRipetutoNonDuplica(t *testing.T) {
	amb := nuovoAmbiente(t)
	dto := dtoBase()
	dto.DataFine = "2024-05-11"
	amb.creaPratica(t, dto)

	rec := amb.chiama(t, http.MethodPost, "/pratiche/1/scan-scadenze", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var prime []workflow.Attivita
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prime))
	require.Len(t, prime, 1)

	// secondo scan: l'attività della regola è ancora aperta, niente doppioni
	rec = amb.chiama(t, http.MethodPost, "/pratiche/1/scan-scadenze", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = amb.chiama(t, http.MethodGet, "/pratiche/1", nil)
	var p Pratica
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Workflow[workflow.StepInizioPratica].Tasks, 1)

	// completata l'attività, la regola può generare di nuovo
	completed := true
	rec = amb.chiama(t, http.MethodPatch,
		"/pratiche/1/workflow/inizioPratica/attivita/"+prime[0].ID,
		map[string]*bool{"completed": &completed})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = amb.chiama(t, http.MethodPost, "/pratiche/1/scan-scadenze", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var terze []workflow.Attivita
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &terze))
	require.Len(t, terze, 1)
	assert.Equal(t, "scadenza-urgente", terze[0].RuleID)
}

func TestScanScadenzeSenzaDataFine(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	rec := amb.chiama(t, http.MethodPost, "/pratiche/1/scan-scadenze", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.Empty(t, amb.notifiche)
}

func TestEliminaPratica(t *testing.T) {
	amb := nuovoAmbiente(t)
	amb.creaPratica(t, dtoBase())

	rec := amb.chiama(t, http.MethodDelete, "/pratiche/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = amb.chiama(t, http.MethodGet, "/pratiche/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
