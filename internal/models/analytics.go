package models

import "time"

// Overview is the KPI block served by GET /analytics/overview.
type Overview struct {
	TotalJobs          int64   `json:"total_processamentos"`
	SuccessRate        float64 `json:"taxa_sucesso"`
	AvgDurationMinutes float64 `json:"tempo_medio_minutos"`
	TotalContacts      int64   `json:"total_contatos_processados"`
}

// Charts holds the categorical distributions served by GET /analytics/charts.
// Categories absent from the dataset are absent from the maps.
type Charts struct {
	StatusDistribution map[string]int64 `json:"status_distribution"`
	SizeDistribution   map[string]int64 `json:"size_distribution"`
}

// GoldEnrichment is one row of the gold_enrichments table as persisted.
// The table is populated by an external pipeline and only read here; NULL
// categories stay nil.
type GoldEnrichment struct {
	ID              string    `json:"id_enriquecimento"`
	WorkspaceID     string    `json:"id_workspace"`
	WorkspaceName   string    `json:"nome_workspace"`
	TotalContacts   int64     `json:"total_contatos"`
	ContactType     string    `json:"tipo_contato"`
	Status          *string   `json:"status_processamento"`
	SizeCategory    *string   `json:"categoria_tamanho_job"`
	DurationMinutes *float64  `json:"duracao_processamento_minutos"`
	Success         bool      `json:"processamento_sucesso"`
	CreatedAt       time.Time `json:"data_criacao"`
	UpdatedAt       time.Time `json:"data_atualizacao"`
}
