package notifiche

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/StudioBattaglia/api-pratiche/internal/workflow"
)

// InviaAlertaScadenze inoltra al webhook configurato le attività urgenti
// generate da uno scan scadenze. Senza WEBHOOK_URL non fa nulla; un
// errore di consegna viene solo loggato, mai propagato.
func InviaAlertaScadenze(codice string, attivita []workflow.Attivita) {
	url := os.Getenv("WEBHOOK_URL")
	if url == "" || len(attivita) == 0 {
		return
	}

	payload := map[string]any{
		"messaggio": "Scadenza pratica in avvicinamento",
		"codice":    codice,
		"attivita":  attivita,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Errore inviando il webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
