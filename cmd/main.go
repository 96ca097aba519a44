package main

import (
	"log"
	"net/http"
	"os"

	"github.com/StudioBattaglia/api-pratiche/internal/agenzia"
	"github.com/StudioBattaglia/api-pratiche/internal/auth"
	"github.com/StudioBattaglia/api-pratiche/internal/automazione"
	"github.com/StudioBattaglia/api-pratiche/internal/collaboratore"
	"github.com/StudioBattaglia/api-pratiche/internal/pratica"
	"github.com/StudioBattaglia/api-pratiche/internal/riepilogo"
	"github.com/StudioBattaglia/api-pratiche/internal/tariffario"
	"github.com/StudioBattaglia/api-pratiche/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// .env opzionale: in produzione le variabili arrivano dall'ambiente
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Errore connettendo al database:", err)
	}

	// AutoMigrate per tutti i modelli
	if err := database.AutoMigrate(
		&pratica.Pratica{},
		&collaboratore.Collaboratore{},
		&agenzia.Agenzia{},
		&tariffario.VoceTariffario{},
		&automazione.RegolaOverride{},
	); err != nil {
		log.Fatal("Errore nell'AutoMigrate:", err)
	}

	// Handlers
	praticaHandler := pratica.NewHandler(database)
	riepilogoHandler := riepilogo.NewHandler(database)
	regoleHandler := automazione.NewHandler(database)
	collaboratoreHandler := collaboratore.NewHandler(database)
	agenziaHandler := agenzia.NewHandler(database)
	tariffarioHandler := tariffario.NewHandler(tariffario.NewRepository(database))

	// Router
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticazione)

	// Rotte pratiche
	api.HandleFunc("/pratiche", praticaHandler.Crea).Methods("POST")
	api.HandleFunc("/pratiche", praticaHandler.Lista).Methods("GET")
	api.HandleFunc("/pratiche/{id}", praticaHandler.TrovaPorID).Methods("GET")
	api.HandleFunc("/pratiche/{id}", praticaHandler.Aggiorna).Methods("PUT")
	api.HandleFunc("/pratiche/{id}", praticaHandler.Elimina).Methods("DELETE")

	// Mutazioni per step del workflow
	api.HandleFunc("/pratiche/{id}/workflow/{step}/attivita", praticaHandler.AggiungiAttivita).Methods("POST")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/attivita/{tid}", praticaHandler.AggiornaAttivita).Methods("PATCH")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/attivita/{tid}", praticaHandler.EliminaAttivita).Methods("DELETE")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/note", praticaHandler.AggiungiNota).Methods("POST")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/checklist/{item}", praticaHandler.AggiornaChecklist).Methods("PATCH")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/invio", praticaHandler.ImpostaInvio).Methods("PATCH")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/pagamento", praticaHandler.AggiornaPagamento).Methods("PATCH")
	api.HandleFunc("/pratiche/{id}/workflow/{step}/completa", praticaHandler.CompletaStep).Methods("PATCH")
	api.HandleFunc("/pratiche/{id}/scan-scadenze", praticaHandler.ScanScadenze).Methods("POST")

	// Riepilogo finanziario
	api.HandleFunc("/riepilogo", riepilogoHandler.Riepilogo).Methods("GET")

	// Regole di automazione
	api.HandleFunc("/regole", regoleHandler.Lista).Methods("GET")
	api.HandleFunc("/regole/{id}", regoleHandler.Aggiorna).Methods("PUT")

	// Anagrafiche
	api.HandleFunc("/collaboratori", collaboratoreHandler.Crea).Methods("POST")
	api.HandleFunc("/collaboratori", collaboratoreHandler.Lista).Methods("GET")
	api.HandleFunc("/collaboratori/{id}", collaboratoreHandler.TrovaPorID).Methods("GET")
	api.HandleFunc("/collaboratori/{id}", collaboratoreHandler.Aggiorna).Methods("PUT")
	api.HandleFunc("/collaboratori/{id}", collaboratoreHandler.Elimina).Methods("DELETE")

	api.HandleFunc("/agenzie", agenziaHandler.Crea).Methods("POST")
	api.HandleFunc("/agenzie", agenziaHandler.Lista).Methods("GET")
	api.HandleFunc("/agenzie/{id}", agenziaHandler.TrovaPorID).Methods("GET")
	api.HandleFunc("/agenzie/{id}", agenziaHandler.Aggiorna).Methods("PUT")
	api.HandleFunc("/agenzie/{id}", agenziaHandler.Elimina).Methods("DELETE")

	api.HandleFunc("/tariffario", tariffarioHandler.Crea).Methods("POST")
	api.HandleFunc("/tariffario", tariffarioHandler.Lista).Methods("GET")
	api.HandleFunc("/tariffario/{id}", tariffarioHandler.Aggiorna).Methods("PUT")
	api.HandleFunc("/tariffario/{id}", tariffarioHandler.Elimina).Methods("DELETE")

	// Il front-end gira su un'origin diversa
	handler := cors.AllowAll().Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server in ascolto sulla porta " + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
