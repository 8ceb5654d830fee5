package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxEventNameLength        = 200
	MaxEventDescriptionLength = 5000
	MaxProposalMessageLength  = 2000
	MaxReviewCommentLength    = 2000
	MinDisplayNameLength      = 2
	MaxDisplayNameLength      = 100
	MaxLocationLength         = 100
	MaxTagLength              = 60
	MaxTagsCount              = 30
	MaxGuestCount             = 100000
	MaxPrice                  = 100000000.0
	MaxServiceRadiusKm        = 1000
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s deve ter pelo menos %d caracteres", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s deve ter no máximo %d caracteres", fieldName, max)
	}
	return nil
}

func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s é obrigatório", fieldName)
	}
	return nil
}

// ValidateTags проверяет списки стилей кухни, типов услуг и диапазонов.
func ValidateTags(fieldName string, tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("%s: no máximo %d itens", fieldName, MaxTagsCount)
	}
	for _, tag := range tags {
		if err := ValidateLength(fieldName, strings.TrimSpace(tag), 0, MaxTagLength); err != nil {
			return err
		}
	}
	return nil
}

func ValidatePrice(fieldName string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s não pode ser negativo", fieldName)
	}
	if value > MaxPrice {
		return fmt.Errorf("%s excede o limite permitido", fieldName)
	}
	return nil
}

// EventInput - поля события, проверяемые до создания сущности.
type EventInput struct {
	Name          string
	Description   string
	GuestCount    int
	City          string
	State         string
	CuisineStyles []string
	ServiceTypes  []string
}

func ValidateEvent(in EventInput) error {
	return collect(
		ValidateLength("nome", strings.TrimSpace(in.Name), 0, MaxEventNameLength),
		ValidateLength("descrição", in.Description, 0, MaxEventDescriptionLength),
		validateRange("número de convidados", in.GuestCount, 0, MaxGuestCount),
		ValidateLength("cidade", in.City, 0, MaxLocationLength),
		ValidateLength("estado", in.State, 0, MaxLocationLength),
		ValidateTags("estilos de cozinha", in.CuisineStyles),
		ValidateTags("tipos de serviço", in.ServiceTypes),
	)
}

func ValidateProposal(totalPrice float64, pricePerGuest *float64, message string) error {
	errs := []error{
		ValidatePrice("preço total", totalPrice),
		ValidateLength("mensagem", message, 0, MaxProposalMessageLength),
	}
	if pricePerGuest != nil {
		errs = append(errs, ValidatePrice("preço por convidado", *pricePerGuest))
	}
	return collect(errs...)
}

func ValidateReviewComment(comment string) error {
	return collect(ValidateLength("comentário", comment, 0, MaxReviewCommentLength))
}

// ProfileInput - редактируемые поля профиля профессионала.
type ProfileInput struct {
	DisplayName     string
	City            string
	State           string
	ServiceRadiusKm int
	Lists           map[string][]string
}

func ValidateProfile(in ProfileInput) error {
	errs := []error{
		ValidateNonEmpty("nome de exibição", in.DisplayName),
		ValidateLength("nome de exibição", strings.TrimSpace(in.DisplayName), MinDisplayNameLength, MaxDisplayNameLength),
		ValidateLength("cidade", in.City, 0, MaxLocationLength),
		ValidateLength("estado", in.State, 0, MaxLocationLength),
		validateRange("raio de atendimento", in.ServiceRadiusKm, 0, MaxServiceRadiusKm),
	}
	for name, list := range in.Lists {
		errs = append(errs, ValidateTags(name, list))
	}
	return collect(errs...)
}

func validateRange(fieldName string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s deve estar entre %d e %d", fieldName, min, max)
	}
	return nil
}

// collect возвращает первую ошибку как ошибку валидации.
func collect(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}
	return nil
}
