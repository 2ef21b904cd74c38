package service_test

import (
	"errors"
	"fmt"
	"goalTracker/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidation тестирует распознавание ошибок валидации
func TestIsValidation(t *testing.T) {
	validation := service.NewValidationError("title", service.MessageRequiredFields)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "validation", err: validation, want: true},
		{name: "wrapped validation", err: fmt.Errorf("добавление цели: %w", validation), want: true},
		{name: "other business code", err: service.NewBusinessError(service.CodeEditCancelled, "cancelled")},
		{name: "plain error", err: errors.New("disk full")},
		{name: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsValidation(tt.err))
		})
	}
}
