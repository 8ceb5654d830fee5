package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
)

// jsonList - список строк, хранимый как JSON-текст. Некорректное содержимое читается как пустой список.
type jsonList []string

func (l *jsonList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = jsonList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonList: неподдерживаемый тип %T", src)
	}
	*l = decodeList(raw)
	return nil
}

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeList принимает массив JSON, допуская нестроковые элементы (числа приводятся к строке).
func decodeList(raw []byte) jsonList {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return jsonList{}
	}
	result := make(jsonList, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			result = append(result, v)
		case float64:
			result = append(result, fmt.Sprintf("%g", v))
		}
	}
	return result
}

func cuisineStylesFromColumn(l jsonList) []string {
	return valueobject.NormalizeSet(l)
}

func serviceTypesFromColumn(l jsonList) []string {
	return valueobject.NormalizeSet(l)
}

func capacityTiersFromColumn(l jsonList) []string {
	return valueobject.NormalizeSet(l)
}

// priceRangesFromColumn сохраняет строки как есть: разбор интервалов выполняет движок оценки.
func priceRangesFromColumn(l jsonList) []string {
	return valueobject.NormalizeSet(l)
}

func eventTypesFromColumn(l jsonList) []valueobject.EventType {
	seen := make(map[valueobject.EventType]struct{}, len(l))
	result := make([]valueobject.EventType, 0, len(l))
	for _, raw := range l {
		t := valueobject.ParseEventType(raw)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}

func eventTypesToColumn(types []valueobject.EventType) jsonList {
	result := make(jsonList, 0, len(types))
	for _, t := range types {
		result = append(result, string(t))
	}
	return result
}
