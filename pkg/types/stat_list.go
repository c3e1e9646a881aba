package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Stat is one labeled statistic displayed on a company profile
// (e.g. {"label": "Employees", "value": "1,200"}).
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// StatList stores a company's labeled statistics as a jsonb column.
type StatList []Stat

// Value implements driver.Valuer.
func (s StatList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode stat list: %w", err)
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (s *StatList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported stat list source type %T", value)
	}

	if len(raw) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, s)
}

// GormDataType tells GORM which column type backs the list.
func (StatList) GormDataType() string {
	return "jsonb"
}
