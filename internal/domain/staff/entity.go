package staff

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// Window is an available time range inside one day
type Window struct {
	Start timegrid.TimeOfDay `json:"start"`
	End   timegrid.TimeOfDay `json:"end"`
}

// WeeklySchedule maps an ISO date ("2006-01-02") to the member's available
// windows on that date. Owned by the staff directory; the scheduling core
// reads it but never writes it.
type WeeklySchedule map[string][]Window

// Value implements driver.Valuer; stored as JSONB
func (s WeeklySchedule) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *WeeklySchedule) Scan(src interface{}) error {
	if src == nil {
		*s = WeeklySchedule{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into WeeklySchedule", src)
	}
	return json.Unmarshal(b, s)
}

// Member is a staff directory entry
type Member struct {
	ID             int64          `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Role           string         `db:"role" json:"role"`
	Email          string         `db:"email" json:"email"`
	Phone          string         `db:"phone" json:"phone"`
	Active         bool           `db:"active" json:"active"`
	WeeklySchedule WeeklySchedule `db:"weekly_schedule" json:"weekly_schedule"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
