// internal/riepilogo/riepilogo.go
package riepilogo

import (
	"time"

	"github.com/StudioBattaglia/api-pratiche/internal/pratica"
	"github.com/StudioBattaglia/api-pratiche/internal/utils"
	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
)

// Filtri opzionali sull'aggregazione. Valore zero = nessun filtro.
type Filtri struct {
	Anno  int
	Mese  int // 1-12
	Stato string
}

// TotaliCollaboratore è il riepilogo per singolo collaboratore.
type TotaliCollaboratore struct {
	Totale   float64 `json:"totale"`
	Pagato   float64 `json:"pagato"`
	DaPagare float64 `json:"daPagare"`
}

// Riepilogo è la fotografia finanziaria dello studio.
type Riepilogo struct {
	NumeroPratiche                int                            `json:"numeroPratiche"`
	TotaleRicevuto                float64                        `json:"totaleRicevuto"`
	DaIncassareInCorso            float64                        `json:"daIncassareInCorso"`
	TotaleCollaboratoriDichiarato float64                        `json:"totaleCollaboratoriDichiarato"`
	MargineOperativoPct           float64                        `json:"margineOperativoPct"`
	PerCollaboratore              map[string]TotaliCollaboratore `json:"perCollaboratore"`
	IncassiMensili                []float64                      `json:"incassiMensili"`
	PagamentiCollabMensili        []float64                      `json:"pagamentiCollabMensili"`
}

// ImportoRicevuto somma gli incassi di una pratica sugli step di
// pagamento. Doppio binario: forma corrente (workflow) oppure, per i
// record non ancora migrati, la forma piatta legacy — lì l'importo conta
// solo a step completato.
func ImportoRicevuto(p *pratica.Pratica) float64 {
	var tot float64
	for _, step := range workflow.StepPagamenti() {
		if p.Workflow != nil {
			if st := p.Workflow[step]; st != nil {
				tot += utils.Float64OrZero(st.ImportoCommittente)
				continue
			}
		}
		if leg, ok := p.Steps[step]; ok && leg.Completed {
			tot += utils.Float64OrZero(leg.Importo)
		}
	}
	return tot
}

// dataPagamento sceglie la data di competenza di un pagamento: la data di
// completamento dello step se presente, altrimenti l'inizio pratica.
func dataPagamento(p *pratica.Pratica, completedDate string) (time.Time, bool) {
	if t, ok := utils.ParseData(completedDate); ok {
		return t, true
	}
	return utils.ParseData(p.DataInizio)
}

func passaFiltri(p *pratica.Pratica, f Filtri) bool {
	if f.Stato != "" && p.Stato != f.Stato {
		return false
	}
	if f.Anno != 0 || f.Mese != 0 {
		inizio, ok := utils.ParseData(p.DataInizio)
		if !ok {
			return false
		}
		if f.Anno != 0 && inizio.Year() != f.Anno {
			return false
		}
		if f.Mese != 0 && int(inizio.Month()) != f.Mese {
			return false
		}
	}
	return true
}

// Aggrega calcola il riepilogo finanziario su tutte le pratiche. Pura:
// nessun accesso allo store, importi assenti valgono zero, divisioni per
// zero restituiscono esattamente 0.
func Aggrega(pratiche []pratica.Pratica, f Filtri) Riepilogo {
	out := Riepilogo{
		PerCollaboratore:       map[string]TotaliCollaboratore{},
		IncassiMensili:         make([]float64, 12),
		PagamentiCollabMensili: make([]float64, 12),
	}

	for i := range pratiche {
		p := &pratiche[i]
		if !passaFiltri(p, f) {
			continue
		}
		out.NumeroPratiche++

		ricevuto := ImportoRicevuto(p)
		out.TotaleRicevuto += ricevuto
		if p.Stato == pratica.StatoInCorso {
			out.DaIncassareInCorso += utils.Float64OrZero(p.ImportoTotale) - ricevuto
		}

		dichiarato := utils.Float64OrZero(p.ImportoCollaboratore)
		dichiaratoFirm := utils.Float64OrZero(p.ImportoFirmatario)
		out.TotaleCollaboratoriDichiarato += dichiarato + dichiaratoFirm

		var pagatoCollab, pagatoFirm float64
		for _, step := range workflow.StepPagamenti() {
			var st *workflow.StatoStep
			if p.Workflow != nil {
				st = p.Workflow[step]
			}
			if st == nil {
				continue
			}

			pagatoCollab += utils.Float64OrZero(st.ImportoCollaboratore)
			pagatoFirm += utils.Float64OrZero(st.ImportoFirmatario)

			// serie mensili: competenza del singolo pagamento
			if data, ok := dataPagamento(p, st.CompletedDate); ok {
				if f.Anno == 0 || data.Year() == f.Anno {
					mese := int(data.Month()) - 1
					out.IncassiMensili[mese] += utils.Float64OrZero(st.ImportoCommittente)
					out.PagamentiCollabMensili[mese] += utils.Float64OrZero(st.ImportoCollaboratore) + utils.Float64OrZero(st.ImportoFirmatario)
				}
			}
		}

		if p.Collaboratore != "" {
			tot := out.PerCollaboratore[p.Collaboratore]
			tot.Totale += dichiarato
			tot.Pagato += pagatoCollab
			tot.DaPagare = tot.Totale - tot.Pagato
			out.PerCollaboratore[p.Collaboratore] = tot
		}
		if p.CollaboratoreFirmatario != "" {
			tot := out.PerCollaboratore[p.CollaboratoreFirmatario]
			tot.Totale += dichiaratoFirm
			tot.Pagato += pagatoFirm
			tot.DaPagare = tot.Totale - tot.Pagato
			out.PerCollaboratore[p.CollaboratoreFirmatario] = tot
		}
	}

	// guardia sul diviso-per-zero: margine esattamente 0, mai NaN/Inf
	if out.TotaleRicevuto > 0 {
		out.MargineOperativoPct = (out.TotaleRicevuto - out.TotaleCollaboratoriDichiarato) / out.TotaleRicevuto * 100
	}

	return out
}
