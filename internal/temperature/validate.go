package temperature

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidDataset is returned when a document does not have the expected shape.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrNotLoaded is returned when no dataset has been loaded yet.
	ErrNotLoaded = errors.New("dataset not loaded")
)

var validate = validator.New()

// wireDataset mirrors the JSON document with pointers so missing fields can
// be told apart from zero values.
type wireDataset struct {
	BaseTemperature *float64       `json:"baseTemperature" validate:"required"`
	MonthlyVariance []wireVariance `json:"monthlyVariance" validate:"required,dive"`
}

type wireVariance struct {
	Year     *int     `json:"year" validate:"required"`
	Month    *int     `json:"month" validate:"required"`
	Variance *float64 `json:"variance" validate:"required"`
}

// Decode reads a dataset document and validates it.
func Decode(r io.Reader) (Dataset, error) {
	var payload wireDataset
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return Dataset{}, fmt.Errorf("%w: decode: %v", ErrInvalidDataset, err)
	}
	if err := validate.Struct(payload); err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	ds := Dataset{
		BaseTemperature: *payload.BaseTemperature,
		MonthlyVariance: make([]MonthlyVariance, 0, len(payload.MonthlyVariance)),
	}
	for _, v := range payload.MonthlyVariance {
		ds.MonthlyVariance = append(ds.MonthlyVariance, MonthlyVariance{
			Year:     *v.Year,
			Month:    *v.Month,
			Variance: *v.Variance,
		})
	}

	if err := Validate(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks value ranges on an already decoded dataset.
func Validate(ds Dataset) error {
	if err := validate.Struct(ds); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return nil
}
