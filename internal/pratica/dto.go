// internal/pratica/dto.go
package pratica

type CreaPraticaDTO struct {
	Codice    string `json:"codice" validate:"required"`
	Indirizzo string `json:"indirizzo" validate:"required"`
	Cliente   string `json:"cliente" validate:"required"`
	Agenzia   string `json:"agenzia"`

	Collaboratore           string `json:"collaboratore"`
	CollaboratoreFirmatario string `json:"collaboratoreFirmatario"`

	ImportoBaseCommittente float64 `json:"importoBaseCommittente" validate:"gte=0"`
	ApplyCassaCommittente  bool    `json:"applyCassaCommittente"`
	ApplyIVACommittente    bool    `json:"applyIVACommittente"`

	ImportoBaseCollaboratore float64 `json:"importoBaseCollaboratore" validate:"gte=0"`
	ApplyCassaCollaboratore  bool    `json:"applyCassaCollaboratore"`

	ImportoBaseFirmatario float64 `json:"importoBaseFirmatario" validate:"gte=0"`
	ApplyCassaFirmatario  bool    `json:"applyCassaFirmatario"`

	DataInizio string `json:"dataInizio"`
	DataFine   string `json:"dataFine"`
}

type AggiornaPraticaDTO struct {
	Codice    string `json:"codice"`
	Indirizzo string `json:"indirizzo"`
	Cliente   string `json:"cliente"`
	Agenzia   string `json:"agenzia"`

	Collaboratore           string `json:"collaboratore"`
	CollaboratoreFirmatario string `json:"collaboratoreFirmatario"`

	ImportoBaseCommittente float64 `json:"importoBaseCommittente" validate:"gte=0"`
	ApplyCassaCommittente  bool    `json:"applyCassaCommittente"`
	ApplyIVACommittente    bool    `json:"applyIVACommittente"`

	ImportoBaseCollaboratore float64 `json:"importoBaseCollaboratore" validate:"gte=0"`
	ApplyCassaCollaboratore  bool    `json:"applyCassaCollaboratore"`

	ImportoBaseFirmatario float64 `json:"importoBaseFirmatario" validate:"gte=0"`
	ApplyCassaFirmatario  bool    `json:"applyCassaFirmatario"`

	DataInizio string `json:"dataInizio"`
	DataFine   string `json:"dataFine"`
	Stato      string `json:"stato"`
}

// Payload delle mutazioni per step.

type aggiungiAttivitaRequest struct {
	Text     string `json:"text" validate:"required"`
	DueDate  string `json:"dueDate"`
	Priority string `json:"priority"`
}

type aggiornaAttivitaRequest struct {
	Completed *bool   `json:"completed"`
	Text      *string `json:"text"`
}

type aggiungiNotaRequest struct {
	Text string `json:"text" validate:"required"`
}

type aggiornaChecklistRequest struct {
	Completed bool `json:"completed"`
}

type impostaInvioRequest struct {
	DataInvio string `json:"dataInvio" validate:"required"`
	OraInvio  string `json:"oraInvio"`
}

type aggiornaPagamentoRequest struct {
	ImportoBaseCommittente float64 `json:"importoBaseCommittente" validate:"gte=0"`
	ApplyCassaCommittente  bool    `json:"applyCassaCommittente"`
	ApplyIVACommittente    bool    `json:"applyIVACommittente"`

	ImportoBaseCollaboratore float64 `json:"importoBaseCollaboratore" validate:"gte=0"`
	ApplyCassaCollaboratore  bool    `json:"applyCassaCollaboratore"`

	ImportoBaseFirmatario float64 `json:"importoBaseFirmatario" validate:"gte=0"`
	ApplyCassaFirmatario  bool    `json:"applyCassaFirmatario"`

	Completed bool `json:"completed"`
}

type completaStepRequest struct {
	Completed bool `json:"completed"`
}
