package validator

import (
	"testing"

	domainerrors "pharmacy/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	MA         string  `json:"ma" validate:"required,ma"`
	NDC        string  `json:"ndc" validate:"omitempty,ndc"`
	ATC        string  `json:"atcCode" validate:"omitempty,atc"`
	Controlled string  `json:"controlled" validate:"omitempty,controlled"`
	Image      string  `json:"graphicLink" validate:"omitempty,imageurl"`
	Price      float64 `json:"price" validate:"omitempty,price"`
	Name       string  `json:"name" validate:"max=5"`
	Status     string  `json:"status" validate:"omitempty,oneof=OTC Rx-only"`
	Untagged   string  `validate:"max=1"`
}

func fieldErrors(t *testing.T, err error) (*domainerrors.ValidationError, map[string]string) {
	t.Helper()

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)

	return validationErr, validationErr.Fields()
}

func TestValidate_Valid(t *testing.T) {
	req := &sampleRequest{
		MA:         "AB123456",
		NDC:        "1234-5678-90",
		ATC:        "N02BA01",
		Controlled: "C-II",
		Image:      "https://cdn.example.com/pill.jpeg?v=2",
		Price:      19.99,
		Name:       "short",
		Status:     "Rx-only",
	}

	assert.NoError(t, New().Validate(req))
}

func TestValidate_CustomTags(t *testing.T) {
	req := &sampleRequest{
		MA:         "ab123456",
		NDC:        "1234567890",
		ATC:        "N2BA01",
		Controlled: "C-X",
		Image:      "ftp://example.com/pill.png",
		Price:      1.005,
	}

	validationErr, fields := fieldErrors(t, New().Validate(req))

	assert.Contains(t, validationErr.Message(), "object='sampleRequest'")
	assert.Equal(t, map[string]string{
		"ma":          "must be in format AA123456",
		"ndc":         "must be in format 1234-5678-90",
		"atcCode":     "must follow the format A00AA00",
		"controlled":  "must follow the format C-I, C-II, etc.",
		"graphicLink": "must be a valid image URL",
		"price":       "must be a valid number with up to 2 decimal places",
	}, fields)
}

func TestValidate_GenericMessages(t *testing.T) {
	req := &sampleRequest{
		Name:     "too long",
		Status:   "maybe",
		Untagged: "xx",
	}

	_, fields := fieldErrors(t, New().Validate(req))

	assert.Equal(t, "must not be blank", fields["ma"])
	assert.Equal(t, "cannot exceed 5 characters", fields["name"])
	assert.Equal(t, "must be one of: OTC, Rx-only", fields["status"])
	assert.Equal(t, "cannot exceed 1 characters", fields["Untagged"])
}

func TestTwoDecimalPlaces(t *testing.T) {
	v := New()

	for _, price := range []float64{0.01, 0.1, 1, 12.5, 99.99, 9999.99} {
		assert.NoError(t, v.Validate(&sampleRequest{MA: "AB123456", Price: price}), price)
	}
	for _, price := range []float64{0.001, 1.234, 99.999} {
		assert.Error(t, v.Validate(&sampleRequest{MA: "AB123456", Price: price}), price)
	}
}
