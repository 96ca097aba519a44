// internal/pratica/migrazione.go
package pratica

import (
	"github.com/StudioBattaglia/api-pratiche/internal/utils"
	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
	"github.com/google/uuid"
)

// DivisoreStorico è la costante usata per dedurre l'imponibile dai lordi
// dei record storici: 1 + 0.05 + 0.22*1.05, cioè cassa e IVA entrambe
// applicate. I record nati con flag diversi producono una base dedotta
// inesatta: è un'approssimazione storica nota, da non "correggere".
const DivisoreStorico = 1.271

const divisoreCassa = 1.05

// Migra porta un record alla forma corrente. È totale e idempotente:
// dati mancanti o malformati valgono come assenti e vengono azzerati,
// un record già in forma corrente esce invariato. La migrazione avviene
// in lettura, il record sullo store non viene riscritto.
func Migra(p *Pratica) *Pratica {
	if p == nil {
		return nil
	}

	// 1) deduzione imponibile committente dal lordo storico
	if p.ImportoTotale != 0 && p.ImportoBaseCommittente == 0 {
		p.ImportoBaseCommittente = utils.Round2(p.ImportoTotale / DivisoreStorico)
		p.ApplyCassaCommittente = true
		p.ApplyIVACommittente = true
	}

	// 2) deduzione simmetrica per collaboratore e firmatario (solo cassa)
	if p.ImportoCollaboratore != 0 && p.ImportoBaseCollaboratore == 0 {
		p.ImportoBaseCollaboratore = utils.Round2(p.ImportoCollaboratore / divisoreCassa)
		p.ApplyCassaCollaboratore = true
	}
	if p.ImportoFirmatario != 0 && p.ImportoBaseFirmatario == 0 {
		p.ImportoBaseFirmatario = utils.Round2(p.ImportoFirmatario / divisoreCassa)
		p.ApplyCassaFirmatario = true
	}

	// 3) costruzione del workflow se assente, con backfill dalla forma
	// piatta legacy
	if p.Workflow == nil {
		p.Workflow = workflow.NuovoStato()
		for id, leg := range p.Steps {
			def, ok := workflow.StepByID(id)
			if !ok {
				continue
			}
			st := p.Workflow[id]
			if st == nil {
				continue
			}
			migraStepLegacy(def, leg, st)
		}
	} else {
		// voci mancanti o nulle = "nessun dato", vengono azzerate senza
		// toccare quelle esistenti
		for _, def := range workflow.Steps() {
			if st, ok := p.Workflow[def.ID]; ok && st != nil {
				continue
			}
			if st := workflow.ZeroStato(def); st != nil {
				p.Workflow[def.ID] = st
			} else {
				delete(p.Workflow, def.ID)
			}
		}
	}

	// 4) inizioPratica è passato da note a tasks: la conversione perde lo
	// stato di completamento (tutte le attività ripartono da non fatte)
	if st := p.Workflow[workflow.StepInizioPratica]; st != nil && st.Tasks == nil {
		st.Tasks = []workflow.Attivita{}
		for _, nota := range st.Notes {
			st.Tasks = append(st.Tasks, workflow.Attivita{
				ID:          uuid.NewString(),
				Text:        nota.Text,
				Completed:   false,
				CreatedDate: nota.Date,
			})
		}
		st.Notes = nil
	}

	// 5) sotto-oggetti per tipo: una voce può esistere con la mappa o le
	// liste a nil (record scritti a mano o troncati), e gli handler
	// scrivono dentro senza ricontrollare
	for _, def := range workflow.Steps() {
		normalizzaStep(def, p.Workflow[def.ID])
	}

	return p
}

// normalizzaStep azzera i sotto-oggetti mancanti di una voce esistente,
// secondo il tipo dello step.
func normalizzaStep(def workflow.StepDef, st *workflow.StatoStep) {
	if st == nil {
		return
	}
	switch def.Tipo {
	case workflow.TipoIntestazione, workflow.TipoDettagli:
		// nessuno stato persistito
	case workflow.TipoAttivita, workflow.TipoNota:
		if st.Tasks == nil {
			st.Tasks = []workflow.Attivita{}
		}
		if st.Notes == nil {
			st.Notes = []workflow.Nota{}
		}
	case workflow.TipoChecklist:
		if st.Checklist == nil {
			st.Checklist = map[string]workflow.VoceChecklistStato{}
		}
		for _, voce := range def.VociChecklist {
			if _, ok := st.Checklist[voce.ID]; !ok {
				st.Checklist[voce.ID] = workflow.VoceChecklistStato{}
			}
		}
	case workflow.TipoData, workflow.TipoPagamento:
		// campi scalari: lo zero value è già la forma azzerata
	}
}

// migraStepLegacy travasa una voce della forma piatta nello stato corrente
// dello step, secondo il tipo.
func migraStepLegacy(def workflow.StepDef, leg StepLegacy, st *workflow.StatoStep) {
	st.Completed = leg.Completed
	st.CompletedDate = leg.CompletedDate

	switch def.Tipo {
	case workflow.TipoIntestazione, workflow.TipoDettagli:
		// mai raggiunto: questi step non hanno stato
	case workflow.TipoAttivita:
		if leg.Note != "" {
			st.Tasks = append(st.Tasks, workflow.Attivita{
				ID:            uuid.NewString(),
				Text:          leg.Note,
				Completed:     leg.Completed,
				CompletedDate: leg.CompletedDate,
			})
		}
	case workflow.TipoChecklist, workflow.TipoNota, workflow.TipoData:
		if leg.Note != "" {
			st.Notes = append(st.Notes, workflow.Nota{Text: leg.Note, Date: leg.CompletedDate})
		}
	case workflow.TipoPagamento:
		if leg.Note != "" {
			st.Notes = append(st.Notes, workflow.Nota{Text: leg.Note, Date: leg.CompletedDate})
		}
		if leg.Importo != 0 {
			st.ImportoCommittente = leg.Importo
			st.ImportoBaseCommittente = utils.Round2(leg.Importo / DivisoreStorico)
			st.ApplyCassaCommittente = true
			st.ApplyIVACommittente = true
		}
	}
}
