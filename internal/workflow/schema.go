// internal/workflow/schema.go
package workflow

// TipoStep identifica la natura di uno step del flusso pratica.
type TipoStep string

const (
	TipoIntestazione TipoStep = "header"
	TipoDettagli     TipoStep = "details"
	TipoAttivita     TipoStep = "task"
	TipoChecklist    TipoStep = "checklist"
	TipoNota         TipoStep = "note"
	TipoData         TipoStep = "date"
	TipoPagamento    TipoStep = "payment"
)

// VoceChecklist è una voce configurata per gli step di tipo checklist.
type VoceChecklist struct {
	ID    string `json:"id"`
	Testo string `json:"testo"`
}

// StepDef descrive staticamente uno step del flusso.
type StepDef struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	Tipo          TipoStep        `json:"tipo"`
	VociChecklist []VoceChecklist `json:"vociChecklist,omitempty"`
}

// Id degli step, nell'ordine del flusso.
const (
	StepIntestazione         = "intestazione"
	StepDettagliPratica      = "dettagliPratica"
	StepInizioPratica        = "inizioPratica"
	StepAccessoAtti          = "accessoAtti"
	StepSopralluogo          = "sopralluogo"
	StepIncarico             = "incarico"
	StepAcconto1             = "acconto1"
	StepEspletamentoPratica1 = "espletamentoPratica1"
	StepAcconto2             = "acconto2"
	StepPresentazionePratica = "presentazionePratica"
	StepSaldo                = "saldo"
)

// steps è l'elenco ordinato e immutabile degli step del flusso.
// La variante "privata" usa lo stesso schema: cambiano solo le
// anagrafiche di agenzie e collaboratori, non gli step.
var steps = []StepDef{
	{ID: StepIntestazione, Nome: "Intestazione", Tipo: TipoIntestazione},
	{ID: StepDettagliPratica, Nome: "Dettagli pratica", Tipo: TipoDettagli},
	{ID: StepInizioPratica, Nome: "Inizio pratica", Tipo: TipoAttivita},
	{ID: StepAccessoAtti, Nome: "Accesso agli atti", Tipo: TipoChecklist, VociChecklist: []VoceChecklist{
		{ID: "delegaFirmata", Testo: "Delega firmata"},
		{ID: "richiestaComune", Testo: "Richiesta comune"},
	}},
	{ID: StepSopralluogo, Nome: "Sopralluogo", Tipo: TipoNota},
	{ID: StepIncarico, Nome: "Incarico", Tipo: TipoData},
	{ID: StepAcconto1, Nome: "Acconto 1", Tipo: TipoPagamento},
	{ID: StepEspletamentoPratica1, Nome: "Espletamento pratica", Tipo: TipoNota},
	{ID: StepAcconto2, Nome: "Acconto 2", Tipo: TipoPagamento},
	{ID: StepPresentazionePratica, Nome: "Presentazione pratica", Tipo: TipoNota},
	{ID: StepSaldo, Nome: "Saldo", Tipo: TipoPagamento},
}

// Steps restituisce l'elenco ordinato degli step.
func Steps() []StepDef {
	out := make([]StepDef, len(steps))
	copy(out, steps)
	return out
}

// StepByID cerca la definizione di uno step.
func StepByID(id string) (StepDef, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return StepDef{}, false
}

// StepsDiTipo restituisce in ordine gli step di un dato tipo.
func StepsDiTipo(tipo TipoStep) []StepDef {
	var out []StepDef
	for _, s := range steps {
		if s.Tipo == tipo {
			out = append(out, s)
		}
	}
	return out
}

// IsPagamento indica se lo step è uno step di pagamento.
func IsPagamento(id string) bool {
	s, ok := StepByID(id)
	return ok && s.Tipo == TipoPagamento
}

// StepPagamenti restituisce gli id degli step di pagamento in ordine
// (acconto1, acconto2, saldo).
func StepPagamenti() []string {
	var out []string
	for _, s := range StepsDiTipo(TipoPagamento) {
		out = append(out, s.ID)
	}
	return out
}
