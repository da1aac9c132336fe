package savefile

import "fmt"

// Epoch is the hour counter at 00:00 on 1 January 1936.
const Epoch int64 = 60759371 - 12

const (
	startYear   = 1936
	maxYear     = 9999
	daysPerYear = 365
)

// The game calendar has no leap years.
var monthDays = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GameTime is a point on the in-game calendar.
type GameTime struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

func (t GameTime) String() string {
	return fmt.Sprintf("%02d-%02d-%04d %02d:00:00", t.Day, t.Month, t.Year, t.Hour)
}

// ToGameTime converts a raw hour counter into a calendar time.
func ToGameTime(raw int64) (GameTime, error) {
	hours := raw - Epoch
	if hours < 0 {
		return GameTime{}, fmt.Errorf("%w: %d", ErrDateUnderflow, raw)
	}

	t := GameTime{Year: startYear, Hour: int(hours % 24)}
	days := hours / 24

	years := days / daysPerYear
	if years > maxYear-startYear {
		return GameTime{}, fmt.Errorf("%w: %d", ErrDateOverflow, raw)
	}
	t.Year += int(years)
	days -= years * daysPerYear

	for i, n := range monthDays {
		if days < n {
			t.Month = i + 1
			t.Day = int(days) + 1
			return t, nil
		}
		days -= n
	}
	return GameTime{}, fmt.Errorf("%w: %d", ErrDateOverflow, raw)
}

// DisplayDate formats raw as DD-MM-YYYY HH:00:00.
func DisplayDate(raw int64) (string, error) {
	t, err := ToGameTime(raw)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}
