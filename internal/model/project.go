package model

import "encoding/json"

// Project groups tasks. ID 0 means the project has not been saved yet.
type Project struct {
	ID         int64  `json:"id,omitempty"`
	Nome       string `json:"nome"`
	Descricao  string `json:"descricao"`
	Status     Status `json:"status"`
	DataInicio *Date  `json:"dataInicio"`
	DataFim    *Date  `json:"dataFim"`
}

// UnmarshalJSON also accepts "name" for the project label, which some
// backend builds send instead of "nome"
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	if p.Nome == "" {
		p.Nome = aux.Name
	}
	return nil
}

// DisplayName returns the label to show in headers
func (p Project) DisplayName() string {
	if p.Nome != "" {
		return p.Nome
	}
	return "Projeto " + itoa64(p.ID)
}
