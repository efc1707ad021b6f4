package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizplan-backend/utils"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, utils.Round2(1.234))
	assert.Equal(t, 1.24, utils.Round2(1.235))
	assert.Equal(t, -1.24, utils.Round2(-1.235))
	assert.Equal(t, 0.0, utils.Round2(0))
	assert.Equal(t, 100.0, utils.Round2(99.999))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 42, utils.ParseIntDefault("42", 7))
	assert.Equal(t, 42, utils.ParseIntDefault(" 42 ", 7))
	assert.Equal(t, 7, utils.ParseIntDefault("abc", 7))
	assert.Equal(t, 7, utils.ParseIntDefault("", 7))
	assert.Equal(t, 7, utils.ParseIntDefault("-3", 7))
}

type sampleDTO struct {
	Name   string
	Amount float64
	Count  int
}

func TestNormalizeDTO(t *testing.T) {
	dto := sampleDTO{Name: "  padded  ", Amount: 12.349, Count: 3}
	utils.NormalizeDTO(&dto)
	assert.Equal(t, "padded", dto.Name)
	assert.Equal(t, 12.35, dto.Amount)
	assert.Equal(t, 3, dto.Count)
}

type samplePtrDTO struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount"`
	Skip   *string  `json:"-"`
}

func TestNormalizePtrDTO(t *testing.T) {
	name := "  padded  "
	amount := 12.349
	dto := samplePtrDTO{Name: &name, Amount: &amount}
	utils.NormalizePtrDTO(&dto)
	assert.Equal(t, "padded", *dto.Name)
	assert.Equal(t, 12.35, *dto.Amount)
	assert.Nil(t, dto.Skip)
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	name := "Acme"
	dto := samplePtrDTO{Name: &name}
	got := utils.UpdatesFromPtrDTO(&dto, nil)
	assert.Equal(t, map[string]any{"name": "Acme"}, got)

	got = utils.UpdatesFromPtrDTO(&dto, map[string]string{"name": "client_name"})
	assert.Equal(t, map[string]any{"client_name": "Acme"}, got)
}
