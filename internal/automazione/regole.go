// internal/automazione/regole.go
package automazione

import (
	"fmt"
	"time"

	"github.com/StudioBattaglia/api-pratiche/internal/utils"
	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
	"github.com/google/uuid"
)

// Trigger che il motore riconosce. Un trigger sconosciuto non è un
// errore: semplicemente nessuna regola scatta.
type Trigger string

const (
	TriggerIncarico    Trigger = "incarico"
	TriggerAccessoAtti Trigger = "accessoAtti"
	TriggerPagamento   Trigger = "pagamento"
	TriggerScadenza    Trigger = "deadline"
)

// Priorità delle attività generate.
const (
	PrioritaAlta    = "alta"
	PrioritaNormale = "normale"
)

// AgenziaPrivato è il valore sentinella per le pratiche senza agenzia.
const AgenziaPrivato = "PRIVATO"

// Contesto è la vista della pratica che le regole leggono. Il motore non
// dipende dal modello persistito: chi lo invoca costruisce il contesto.
type Contesto struct {
	Codice        string
	Cliente       string
	Indirizzo     string
	Agenzia       string
	Collaboratore string
	DataFine      string
}

// DatiTrigger è il payload dell'evento che ha fatto scattare il trigger.
type DatiTrigger struct {
	DataOraInvio         string
	ImportoCollaboratore float64
}

// Regola è una singola regola di automazione. Condizione e Testo sono
// codice: la configurazione persistita (vedi RegolaOverride) può toccare
// solo abilitazione, giorni e priorità.
type Regola struct {
	ID         string
	Trigger    Trigger
	Abilitata  bool
	Giorni     int // negativi per le regole di scadenza: prima di dataFine
	Priorita   string
	Condizione func(c Contesto, d DatiTrigger) bool
	Testo      func(c Contesto, d DatiTrigger) string
}

// Regolamento è la tabella ordinata delle regole. È un valore: il motore
// non tiene stato e accetta tabelle fornite dall'esterno.
type Regolamento []Regola

func etichetta(c Contesto) string {
	switch {
	case c.Codice != "":
		return c.Codice
	case c.Cliente != "":
		return c.Cliente
	default:
		return c.Indirizzo
	}
}

// RegoleDefault restituisce la tabella di regole di fabbrica.
func RegoleDefault() Regolamento {
	return Regolamento{
		{
			ID: "incarico-followup", Trigger: TriggerIncarico, Abilitata: true,
			Giorni: 7, Priorita: PrioritaAlta,
			Testo: func(c Contesto, d DatiTrigger) string {
				return "Follow-up incarico — pratica " + etichetta(c)
			},
		},
		{
			ID: "incarico-report-agenzia", Trigger: TriggerIncarico, Abilitata: true,
			Giorni: 14, Priorita: PrioritaNormale,
			Condizione: func(c Contesto, d DatiTrigger) bool {
				return c.Agenzia != "" && c.Agenzia != AgenziaPrivato
			},
			Testo: func(c Contesto, d DatiTrigger) string {
				return "Inviare report a " + c.Agenzia + " — pratica " + etichetta(c)
			},
		},
		{
			ID: "accesso-atti-verifica", Trigger: TriggerAccessoAtti, Abilitata: true,
			Giorni: 7, Priorita: PrioritaNormale,
			Testo: func(c Contesto, d DatiTrigger) string {
				return "Verificare stato accesso agli atti — pratica " + etichetta(c)
			},
		},
		{
			ID: "pagamento-verifica", Trigger: TriggerPagamento, Abilitata: true,
			Giorni: 3, Priorita: PrioritaNormale,
			Testo: func(c Contesto, d DatiTrigger) string {
				return "Verificare ricezione pagamento — pratica " + etichetta(c)
			},
		},
		{
			ID: "pagamento-collaboratore", Trigger: TriggerPagamento, Abilitata: true,
			Giorni: 7, Priorita: PrioritaAlta,
			Condizione: func(c Contesto, d DatiTrigger) bool {
				return c.Collaboratore != "" && d.ImportoCollaboratore > 0
			},
			Testo: func(c Contesto, d DatiTrigger) string {
				return fmt.Sprintf("Pagare collaboratore %s (€ %.2f) — pratica %s",
					c.Collaboratore, d.ImportoCollaboratore, etichetta(c))
			},
		},
		{
			ID: "scadenza-preparazione", Trigger: TriggerScadenza, Abilitata: true,
			Giorni: -30, Priorita: PrioritaNormale,
			Testo: func(c Contesto, d DatiTrigger) string {
				return "Preparare documentazione finale — pratica " + etichetta(c)
			},
		},
		{
			ID: "scadenza-verifica", Trigger: TriggerScadenza, Abilitata: true,
			Giorni: -15, Priorita: PrioritaAlta,
			Testo: func(c Contesto, d DatiTrigger) string {
				return "Verificare avanzamento — pratica " + etichetta(c)
			},
		},
		{
			ID: "scadenza-urgente", Trigger: TriggerScadenza, Abilitata: true,
			Giorni: -7, Priorita: PrioritaAlta,
			Testo: func(c Contesto, d DatiTrigger) string {
				return "URGENTE: completare pratica " + etichetta(c)
			},
		},
	}
}

// GeneraAttivita valuta il regolamento per un trigger e produce le
// attività di follow-up. Puro dato il now: nessun orologio implicito,
// nessuno stato. Trigger sconosciuto → nessuna attività.
func GeneraAttivita(reg Regolamento, c Contesto, trigger Trigger, dati DatiTrigger, now time.Time) []workflow.Attivita {
	var out []workflow.Attivita

	for _, regola := range reg {
		if regola.Trigger != trigger || !regola.Abilitata {
			continue
		}
		if regola.Condizione != nil && !regola.Condizione(c, dati) {
			continue
		}

		var scadenza time.Time
		if trigger == TriggerScadenza {
			fine, ok := utils.ParseData(c.DataFine)
			if !ok {
				continue
			}
			scadenza = fine.AddDate(0, 0, regola.Giorni)
			// solo per le regole di scadenza: niente attività già scadute
			if scadenza.Before(now) {
				continue
			}
		} else {
			base := now
			if t, ok := utils.ParseData(dati.DataOraInvio); ok {
				base = t
			}
			scadenza = base.AddDate(0, 0, regola.Giorni)
		}

		out = append(out, workflow.Attivita{
			ID:            uuid.NewString(),
			Text:          regola.Testo(c, dati),
			Completed:     false,
			CreatedDate:   utils.FormatData(now),
			DueDate:       utils.FormatData(scadenza),
			Priority:      regola.Priorita,
			AutoCreated:   true,
			TriggerSource: string(trigger),
			RuleID:        regola.ID,
		})
	}

	return out
}
