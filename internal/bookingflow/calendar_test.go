package bookingflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2024, time.June, flowZone)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, flowZone), start)
	assert.Equal(t, time.Date(2024, 7, 31, 0, 0, 0, 0, flowZone), end)

	// virada de ano
	start, end = MonthWindow(2024, time.December, flowZone)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, flowZone), start)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, flowZone), end)
}

func TestDateSelectable_Predicate(t *testing.T) {
	today := time.Date(2024, 6, 3, 15, 30, 0, 0, flowZone)
	rangeEnd := time.Date(2024, 7, 31, 0, 0, 0, 0, flowZone)
	withSlots := map[string]bool{"2024-06-10": true}

	// hoje conta como selecionável mesmo com a hora já avançada
	todaySlots := map[string]bool{"2024-06-03": true}
	assert.True(t, DateSelectable(today, today, rangeEnd, false, todaySlots))

	// último dia do período ainda entra
	endSlots := map[string]bool{"2024-07-31": true}
	assert.True(t, DateSelectable(rangeEnd, today, rangeEnd, false, endSlots))

	// um dia além, não
	assert.False(t, DateSelectable(rangeEnd.AddDate(0, 0, 1), today, rangeEnd, false, endSlots))

	// carregando: dias sem dados não são bloqueados
	assert.True(t, DateSelectable(time.Date(2024, 6, 12, 0, 0, 0, 0, flowZone), today, rangeEnd, true, withSlots))

	// domingo nunca, nem carregando
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, flowZone)
	assert.False(t, DateSelectable(sunday, today, rangeEnd, true, withSlots))
}
