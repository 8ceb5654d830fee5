package valueobject

import (
	"strconv"
	"strings"
	"unicode"
)

// PriceRange - ценовая категория события, выбираемая клиентом.
type PriceRange string

const (
	PriceRangeUpTo5k   PriceRange = "ATE_5K"
	PriceRange5kTo10k  PriceRange = "5K_10K"
	PriceRange10kTo20k PriceRange = "10K_20K"
	PriceRange20kTo50k PriceRange = "20K_50K"
	PriceRangeAbove50k PriceRange = "ACIMA_50K"
)

// budgetByPriceRange - фиксированная таблица максимального бюджета по категории.
var budgetByPriceRange = map[PriceRange]float64{
	PriceRangeUpTo5k:   5000,
	PriceRange5kTo10k:  10000,
	PriceRange10kTo20k: 20000,
	PriceRange20kTo50k: 50000,
	PriceRangeAbove50k: 100000,
}

func (p PriceRange) IsValid() bool {
	_, ok := budgetByPriceRange[p]
	return ok
}

// MaxBudget возвращает бюджет категории; 0 означает, что бюджет не указан.
func (p PriceRange) MaxBudget() float64 {
	return budgetByPriceRange[p]
}

// Interval - ценовой диапазон профессионала с включительными границами.
type Interval struct {
	Min float64
	Max float64
}

func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// ParseInterval разбирает строку вида "<min>-<max>", отбрасывая всё, кроме цифр.
// Некорректные строки возвращают ok=false и должны пропускаться.
func ParseInterval(raw string) (Interval, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return Interval{}, false
	}

	minValue, ok := digitsOnly(parts[0])
	if !ok {
		return Interval{}, false
	}
	maxValue, ok := digitsOnly(parts[1])
	if !ok {
		return Interval{}, false
	}
	if minValue > maxValue {
		return Interval{}, false
	}

	return Interval{Min: minValue, Max: maxValue}, true
}

// ParseIntervals разбирает список диапазонов, пропуская некорректные.
func ParseIntervals(raw []string) []Interval {
	result := make([]Interval, 0, len(raw))
	for _, r := range raw {
		if interval, ok := ParseInterval(r); ok {
			result = append(result, interval)
		}
	}
	return result
}

// MaxCapacity возвращает наибольшее число гостей из уровней вместимости
// ("até 50", "50-150", "200+"). Уровни без цифр игнорируются.
func MaxCapacity(tiers []string) int {
	maxGuests := 0
	for _, tier := range tiers {
		for _, part := range strings.Split(tier, "-") {
			value, ok := digitsOnly(part)
			if ok && int(value) > maxGuests {
				maxGuests = int(value)
			}
		}
	}
	return maxGuests
}

func digitsOnly(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
