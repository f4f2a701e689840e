package bookingflow

import "time"

const dateLayout = "2006-01-02"

// MonthWindow devolve o período buscado quando o visitante está vendo
// o mês (year, month): do primeiro dia do mês até o último dia do mês
// seguinte, para a virada de mês já chegar pré-carregada.
func MonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 2, -1)
	return start, end
}

// dayOf trunca um instante para a meia-noite local.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DateSelectable decide se um dia do calendário pode ser escolhido:
//   - não está no passado;
//   - está dentro do período já buscado;
//   - não é domingo (regra fixa do produto);
//   - tem ao menos um horário livre — exceto enquanto a busca ainda
//     está em andamento, para não apagar o calendário inteiro durante
//     o carregamento.
func DateSelectable(
	d time.Time,
	today time.Time,
	rangeEnd time.Time,
	loading bool,
	datesWithSlots map[string]bool,
) bool {

	loc := d.Location()

	day := dayOf(d, loc)

	if day.Before(dayOf(today, loc)) {
		return false
	}

	if day.After(dayOf(rangeEnd, loc)) {
		return false
	}

	if day.Weekday() == time.Sunday {
		return false
	}

	if loading {
		return true
	}

	return datesWithSlots[day.Format(dateLayout)]
}
