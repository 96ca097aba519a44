package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdineSteps(t *testing.T) {
	attesi := []string{
		StepIntestazione, StepDettagliPratica, StepInizioPratica,
		StepAccessoAtti, StepSopralluogo, StepIncarico,
		StepAcconto1, StepEspletamentoPratica1, StepAcconto2,
		StepPresentazionePratica, StepSaldo,
	}
	got := Steps()
	require.Len(t, got, len(attesi))
	for i, s := range got {
		assert.Equal(t, attesi[i], s.ID)
	}
}

func TestStepPagamenti(t *testing.T) {
	assert.Equal(t, []string{StepAcconto1, StepAcconto2, StepSaldo}, StepPagamenti())
	assert.True(t, IsPagamento(StepSaldo))
	assert.False(t, IsPagamento(StepSopralluogo))
	assert.False(t, IsPagamento("inesistente"))
}

func TestStepsDiTipo(t *testing.T) {
	note := StepsDiTipo(TipoNota)
	require.Len(t, note, 3)
	assert.Equal(t, StepSopralluogo, note[0].ID)

	checklist := StepsDiTipo(TipoChecklist)
	require.Len(t, checklist, 1)
	assert.Len(t, checklist[0].VociChecklist, 2)
}

func TestNuovoStato(t *testing.T) {
	w := NuovoStato()

	// header e details non portano stato
	assert.NotContains(t, w, StepIntestazione)
	assert.NotContains(t, w, StepDettagliPratica)

	// tutti gli altri sì
	for _, def := range Steps() {
		if def.Tipo == TipoIntestazione || def.Tipo == TipoDettagli {
			continue
		}
		require.Contains(t, w, def.ID)
		st := w[def.ID]
		assert.False(t, st.Completed)

		switch def.Tipo {
		case TipoAttivita, TipoNota:
			assert.NotNil(t, st.Tasks)
			assert.Empty(t, st.Tasks)
		case TipoChecklist:
			require.Len(t, st.Checklist, len(def.VociChecklist))
			for _, voce := range def.VociChecklist {
				assert.False(t, st.Checklist[voce.ID].Completed)
			}
		case TipoData:
			assert.Empty(t, st.DataInvio)
		case TipoPagamento:
			assert.Zero(t, st.ImportoCommittente)
		case TipoIntestazione, TipoDettagli:
		}
	}
}

func TestChecklistCompleta(t *testing.T) {
	def, ok := StepByID(StepAccessoAtti)
	require.True(t, ok)

	st := ZeroStato(def)
	assert.False(t, st.ChecklistCompleta(def))

	st.Checklist["delegaFirmata"] = VoceChecklistStato{Completed: true}
	assert.False(t, st.ChecklistCompleta(def))

	st.Checklist["richiestaComune"] = VoceChecklistStato{Completed: true}
	assert.True(t, st.ChecklistCompleta(def))
}
