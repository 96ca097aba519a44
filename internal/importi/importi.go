// internal/importi/importi.go
package importi

import "github.com/StudioBattaglia/api-pratiche/internal/utils"

// Maggiorazioni applicate sugli importi dello studio.
const (
	AliquotaCassa = 0.05 // contributo cassa professionale
	AliquotaIVA   = 0.22 // IVA, solo lato committente
)

// TotaleCommittente calcola il lordo committente partendo dall'imponibile.
// Ordine: prima cassa, poi IVA (l'IVA si applica anche sulla cassa).
// Il risultato resta a piena precisione: l'arrotondamento avviene solo
// nella conversione inversa.
func TotaleCommittente(base float64, applyCassa, applyIVA bool) float64 {
	t := utils.Float64OrZero(base)
	if applyCassa {
		t += t * AliquotaCassa
	}
	if applyIVA {
		t += t * AliquotaIVA
	}
	return t
}

// TotaleCollaboratore calcola il lordo collaboratore: solo cassa, mai IVA.
func TotaleCollaboratore(base float64, applyCassa bool) float64 {
	t := utils.Float64OrZero(base)
	if applyCassa {
		t += t * AliquotaCassa
	}
	return t
}

// BaseCommittente inverte TotaleCommittente. L'ordine di divisione deve
// essere IVA poi cassa: le due maggiorazioni non commutano come addizioni
// percentuali su basi diverse, e solo questo ordine è l'inverso esatto
// di cassa-poi-IVA. Arrotonda a due decimali.
func BaseCommittente(totale float64, applyCassa, applyIVA bool) float64 {
	b := utils.Float64OrZero(totale)
	if applyIVA {
		b = b / (1 + AliquotaIVA)
	}
	if applyCassa {
		b = b / (1 + AliquotaCassa)
	}
	return utils.Round2(b)
}

// BaseCollaboratore inverte TotaleCollaboratore. Arrotonda a due decimali.
func BaseCollaboratore(totale float64, applyCassa bool) float64 {
	b := utils.Float64OrZero(totale)
	if applyCassa {
		b = b / (1 + AliquotaCassa)
	}
	return utils.Round2(b)
}
