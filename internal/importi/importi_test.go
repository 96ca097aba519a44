package importi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotaleCommittenteConCassaEIVA(t *testing.T) {
	// 1000 * 1.05 * 1.22 = 1281 esatto
	assert.InDelta(t, 1281.0, TotaleCommittente(1000, true, true), 1e-9)
}

func TestTotaleCommittenteSoloIVA(t *testing.T) {
	assert.InDelta(t, 1220.0, TotaleCommittente(1000, false, true), 1e-9)
}

func TestTotaleCommittenteSenzaMaggiorazioni(t *testing.T) {
	assert.Equal(t, 1000.0, TotaleCommittente(1000, false, false))
}

func TestTotaleCollaboratoreSoloCassa(t *testing.T) {
	assert.InDelta(t, 1050.0, TotaleCollaboratore(1000, true), 1e-9)
	assert.Equal(t, 1000.0, TotaleCollaboratore(1000, false))
}

func TestBaseCommittenteInversoEsatto(t *testing.T) {
	assert.Equal(t, 1000.0, BaseCommittente(1281.0, true, true))
}

func TestAndataRitornoSuBase(t *testing.T) {
	// Il round-trip si àncora sempre sulla base: il lordo non viene
	// arrotondato, la base sì.
	for _, base := range []float64{0, 0.01, 1, 123.45, 1000, 99999.99} {
		lordo := TotaleCommittente(base, true, true)
		assert.InDelta(t, base, BaseCommittente(lordo, true, true), 0.005, "base %v", base)

		lordoCollab := TotaleCollaboratore(base, true)
		assert.InDelta(t, base, BaseCollaboratore(lordoCollab, true), 0.005, "base %v", base)
	}
}

func TestOrdineInversioneNonCommutativo(t *testing.T) {
	// Dividere prima per 1.05 e poi per 1.22 darebbe lo stesso quoziente,
	// ma la semantica delle maggiorazioni come addizioni successive no:
	// verifichiamo che l'inverso dichiarato (IVA poi cassa) riporti alla
	// base anche per valori che non arrotondano in modo banale.
	lordo := TotaleCommittente(837.29, true, true)
	assert.Equal(t, 837.29, BaseCommittente(lordo, true, true))
}

func TestZeriEInputNonValidi(t *testing.T) {
	assert.Equal(t, 0.0, TotaleCollaboratore(0, true))
	assert.Equal(t, 0.0, TotaleCollaboratore(0, false))
	assert.Equal(t, 0.0, BaseCollaboratore(0, true))
	assert.Equal(t, 0.0, BaseCollaboratore(0, false))

	// valori non numerici coerciti a zero, mai errori
	assert.Equal(t, 0.0, TotaleCommittente(math.NaN(), true, true))
	assert.Equal(t, 0.0, BaseCommittente(math.Inf(1), true, true))
}

func TestArrotondamentoMezzoLontanoDaZero(t *testing.T) {
	// 2.005 diviso per niente: round2 half away from zero
	assert.Equal(t, 1.23, BaseCommittente(1.23, false, false))
	assert.Equal(t, 100.5, BaseCommittente(105.525, true, false))
}
