// internal/workflow/stato.go
package workflow

// Attivita è una voce operativa dentro uno step (manuale o generata
// dalle regole di automazione). Le chiavi JSON seguono la forma
// persistita dei record.
type Attivita struct {
	ID            string `json:"id,omitempty"`
	Text          string `json:"text"`
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completedDate,omitempty"`
	CreatedDate   string `json:"createdDate,omitempty"`
	DueDate       string `json:"dueDate,omitempty"`
	Priority      string `json:"priority,omitempty"`
	AutoCreated   bool   `json:"autoCreated,omitempty"`
	TriggerSource string `json:"triggerSource,omitempty"`
	RuleID        string `json:"ruleId,omitempty"`
}

// Nota è un appunto libero su uno step.
type Nota struct {
	Text string `json:"text"`
	Date string `json:"date,omitempty"`
}

// VoceChecklistStato è lo stato di una singola voce di checklist.
type VoceChecklistStato struct {
	Completed bool   `json:"completed"`
	Date      string `json:"date,omitempty"`
}

// StatoStep è lo stato persistito di uno step. I campi valorizzati
// dipendono dal tipo dello step; l'interpretazione passa sempre da uno
// switch esaustivo su TipoStep, mai da controlli di presenza sparsi.
type StatoStep struct {
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completedDate,omitempty"`

	// tipo task / note
	Tasks []Attivita `json:"tasks,omitempty"`
	Notes []Nota     `json:"notes,omitempty"`

	// tipo checklist
	Checklist map[string]VoceChecklistStato `json:"checklist,omitempty"`

	// tipo date
	DataInvio    string `json:"dataInvio,omitempty"`
	OraInvio     string `json:"oraInvio,omitempty"`
	DataOraInvio string `json:"dataOraInvio,omitempty"`

	// tipo payment: terna per parte (committente / collaboratore / firmatario)
	ImportoBaseCommittente   float64 `json:"importoBaseCommittente,omitempty"`
	ApplyCassaCommittente    bool    `json:"applyCassaCommittente,omitempty"`
	ApplyIVACommittente      bool    `json:"applyIVACommittente,omitempty"`
	ImportoCommittente       float64 `json:"importoCommittente,omitempty"`
	ImportoBaseCollaboratore float64 `json:"importoBaseCollaboratore,omitempty"`
	ApplyCassaCollaboratore  bool    `json:"applyCassaCollaboratore,omitempty"`
	ImportoCollaboratore     float64 `json:"importoCollaboratore,omitempty"`
	ImportoBaseFirmatario    float64 `json:"importoBaseFirmatario,omitempty"`
	ApplyCassaFirmatario     bool    `json:"applyCassaFirmatario,omitempty"`
	ImportoFirmatario        float64 `json:"importoFirmatario,omitempty"`
}

// Stato è la mappa step-id → stato persistita come colonna JSONB.
// Gli step header e details non hanno stato.
type Stato map[string]*StatoStep

// ZeroStato costruisce lo stato iniziale (vuoto/azzerato) per uno step.
func ZeroStato(def StepDef) *StatoStep {
	st := &StatoStep{}
	switch def.Tipo {
	case TipoIntestazione, TipoDettagli:
		// nessuno stato persistito
		return nil
	case TipoAttivita, TipoNota:
		st.Tasks = []Attivita{}
		st.Notes = []Nota{}
	case TipoChecklist:
		st.Checklist = map[string]VoceChecklistStato{}
		for _, voce := range def.VociChecklist {
			st.Checklist[voce.ID] = VoceChecklistStato{}
		}
	case TipoData:
		// dataInvio/oraInvio vuote finché non impostate
	case TipoPagamento:
		// importi a zero, flag spenti
	}
	return st
}

// NuovoStato costruisce il workflow iniziale completo: una voce per ogni
// step che porta stato.
func NuovoStato() Stato {
	w := Stato{}
	for _, def := range steps {
		if st := ZeroStato(def); st != nil {
			w[def.ID] = st
		}
	}
	return w
}

// ChecklistCompleta indica se tutte le voci configurate risultano spuntate.
func (s *StatoStep) ChecklistCompleta(def StepDef) bool {
	if s == nil || def.Tipo != TipoChecklist {
		return false
	}
	for _, voce := range def.VociChecklist {
		if !s.Checklist[voce.ID].Completed {
			return false
		}
	}
	return len(def.VociChecklist) > 0
}
