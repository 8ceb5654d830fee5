package valueobject

import "strings"

type EventType string

const (
	EventTypeCasamento        EventType = "CASAMENTO"
	EventTypeAniversario      EventType = "ANIVERSARIO"
	EventTypeCorporativo      EventType = "CORPORATIVO"
	EventTypeFormatura        EventType = "FORMATURA"
	EventTypeConfraternizacao EventType = "CONFRATERNIZACAO"
	EventTypeOutro            EventType = "OUTRO"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeCasamento, EventTypeAniversario, EventTypeCorporativo,
		EventTypeFormatura, EventTypeConfraternizacao, EventTypeOutro:
		return true
	}
	return false
}

// ParseEventType нормализует тип события; неизвестные и пустые значения попадают в OUTRO.
func ParseEventType(raw string) EventType {
	t := EventType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return EventTypeOutro
	}
	return t
}

// Label возвращает человекочитаемое название типа для текстов причин.
func (t EventType) Label() string {
	switch t {
	case EventTypeCasamento:
		return "casamentos"
	case EventTypeAniversario:
		return "aniversários"
	case EventTypeCorporativo:
		return "eventos corporativos"
	case EventTypeFormatura:
		return "formaturas"
	case EventTypeConfraternizacao:
		return "confraternizações"
	default:
		return "eventos diversos"
	}
}

type Role string

const (
	RoleClient       Role = "CLIENT"
	RoleProfessional Role = "PROFESSIONAL"
	RoleAdmin        Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// NormalizeSet убирает пробелы, пустые значения и дубликаты без учёта регистра,
// сохраняя порядок первого вхождения.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}
	return result
}
