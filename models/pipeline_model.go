package models

import "github.com/lib/pq"

type Component struct {
	ID     string `json:"oid"`
	Name   string `json:"name"`
	Driver string `json:"driver"`
}

type Pipeline struct {
	ID         string         `gorm:"column:oid;type:varchar(64);primaryKey" json:"oid"`
	Name       string         `gorm:"column:name;type:varchar(255)" json:"name"`
	Stages     pq.StringArray `gorm:"column:stages;type:text[]" json:"-"`
	Components []Component    `gorm:"-" json:"components"`
}

func (Pipeline) TableName() string {
	return "pipelines"
}

// StageNames returns the ordered component names. A name repeats when a
// component is used more than once.
func (p *Pipeline) StageNames() []string {
	if len(p.Components) == 0 {
		return append([]string{}, p.Stages...)
	}
	names := make([]string, len(p.Components))
	for i, c := range p.Components {
		names[i] = c.Name
	}
	return names
}
