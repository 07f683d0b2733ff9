package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/es"
)

// HolidayCalendar répond "férié ou pas" pour la région configurée.
// Les dates fériées d'une année sont calculées une seule fois par année
// rencontrée dans les données, puis mémorisées
type HolidayCalendar struct {
	holidays []*cal.Holiday

	mu    sync.Mutex
	years map[int]map[string]bool // année -> ensemble de dates "MM-JJ"
}

// NewHolidayCalendar crée un calendrier pour la région donnée.
// Seule l'Espagne (fériés nationaux) est supportée pour l'instant
func NewHolidayCalendar(region string) (*HolidayCalendar, error) {
	switch strings.ToUpper(strings.TrimSpace(region)) {
	case "", "ES":
		return &HolidayCalendar{
			holidays: es.Holidays,
			years:    make(map[int]map[string]bool),
		}, nil
	default:
		return nil, fmt.Errorf("holiday calendar: région inconnue %q", region)
	}
}

// IsHoliday vérifie si la date tombe un jour férié
func (c *HolidayCalendar) IsHoliday(date time.Time) bool {
	return c.yearSet(date.Year())[date.Format("01-02")]
}

// yearSet retourne l'ensemble mémorisé des fériés de l'année, en le
// construisant au premier accès
func (c *HolidayCalendar) yearSet(year int) map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if set, ok := c.years[year]; ok {
		return set
	}

	set := make(map[string]bool, len(c.holidays))
	for _, h := range c.holidays {
		actual, _ := h.Calc(year)
		if !actual.IsZero() {
			set[actual.Format("01-02")] = true
		}
	}
	c.years[year] = set
	return set
}
