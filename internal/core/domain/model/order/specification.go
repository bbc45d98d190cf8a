package order

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

const (
	// MinQuantity and DefaultMaxQuantity bound the number of pieces priced per order.
	MinQuantity        = 1
	DefaultMaxQuantity = 100

	// MaxModelFileSize is the largest accepted model upload, 50 MiB.
	MaxModelFileSize int64 = 50 << 20
)

var ErrSpecificationIsNotConstructed = errors.New("Specification must be created via NewSpecification constructor")

// Finish is the post-processing treatment applied after production.
type Finish string

const (
	FinishNone     Finish = "none"
	FinishSanding  Finish = "sanding"
	FinishPainting Finish = "painting"
	FinishUVCure   Finish = "uv-cure"
)

// AllFinishes lists every finish option.
func AllFinishes() []Finish {
	return []Finish{FinishNone, FinishSanding, FinishPainting, FinishUVCure}
}

func (f Finish) Validate() error {
	switch f {
	case FinishNone, FinishSanding, FinishPainting, FinishUVCure:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("finish", fmt.Errorf("%q is not a finish option", string(f)))
}

// ShippingMethod selects the carrier service used for delivery.
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

func AllShippingMethods() []ShippingMethod {
	return []ShippingMethod{ShippingStandard, ShippingExpress, ShippingOvernight}
}

func (m ShippingMethod) Validate() error {
	switch m {
	case ShippingStandard, ShippingExpress, ShippingOvernight:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("shipping method", fmt.Errorf("%q is not a shipping method", string(m)))
}

var allowedModelExtensions = map[string]bool{".stl": true, ".obj": true, ".3mf": true}

// ModelFile is the metadata of an uploaded 3D model. The file content lives elsewhere.
type ModelFile struct {
	name string
	size int64
}

func NewModelFile(name string, size int64) (ModelFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ModelFile{}, errs.NewValueIsRequiredError("model file name")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedModelExtensions[ext] {
		return ModelFile{}, errs.NewValueIsInvalidErrorWithCause(
			"model file", fmt.Errorf("%s: extension %q is not one of .stl, .obj, .3mf", name, ext))
	}
	if size <= 0 || size > MaxModelFileSize {
		return ModelFile{}, errs.NewValueIsOutOfRangeError("model file size", size, 1, MaxModelFileSize)
	}
	return ModelFile{name: name, size: size}, nil
}

func (f ModelFile) Name() string { return f.name }
func (f ModelFile) Size() int64  { return f.size }

// Specification is what the customer asks for. It is the only input of pricing
// besides catalog and rate data.
//
// Quantity is kept as requested; pricing clamps it into [MinQuantity, max].
// Weight and print time are optional: nil means "not estimated", which is different
// from an explicit zero.
type Specification struct {
	serviceID    string
	materialID   string
	quantity     int
	rush         bool
	shipping     ShippingMethod
	finish       Finish
	weightGrams  *float64
	printHours   *float64
	color        string
	instructions string
	files        []ModelFile

	guard guard.ConstructorGuard
}

type SpecificationOption func(*Specification) error

// WithWeightGrams sets the estimated part mass in grams.
func WithWeightGrams(grams float64) SpecificationOption {
	return func(s *Specification) error {
		if err := validateEstimate("estimated weight", grams); err != nil {
			return err
		}
		s.weightGrams = &grams
		return nil
	}
}

// WithPrintHours sets the estimated machine time in hours.
func WithPrintHours(hours float64) SpecificationOption {
	return func(s *Specification) error {
		if err := validateEstimate("estimated time", hours); err != nil {
			return err
		}
		s.printHours = &hours
		return nil
	}
}

func WithColor(color string) SpecificationOption {
	return func(s *Specification) error {
		s.color = strings.TrimSpace(color)
		return nil
	}
}

func WithInstructions(text string) SpecificationOption {
	return func(s *Specification) error {
		s.instructions = strings.TrimSpace(text)
		return nil
	}
}

func WithModelFiles(files ...ModelFile) SpecificationOption {
	return func(s *Specification) error {
		for _, f := range files {
			if f.name == "" {
				return errs.NewValueIsRequiredError("model file")
			}
		}
		s.files = append(s.files, files...)
		return nil
	}
}

// NewSpecification validates an order specification. An empty shipping method means
// standard delivery and an empty finish means no finish.
func NewSpecification(
	serviceID, materialID string,
	quantity int,
	rush bool,
	shipping ShippingMethod,
	finish Finish,
	opts ...SpecificationOption,
) (Specification, error) {
	if shipping == "" {
		shipping = ShippingStandard
	}
	if finish == "" {
		finish = FinishNone
	}

	s := Specification{
		materialID: strings.TrimSpace(materialID),
		quantity:   quantity,
		rush:       rush,
		guard:      guard.NewConstructorGuard(),
	}

	setters := []error{
		s.setServiceID(serviceID),
		s.setShipping(shipping),
		s.setFinish(finish),
	}
	for _, opt := range opts {
		setters = append(setters, opt(&s))
	}
	if err := errors.Join(setters...); err != nil {
		return Specification{}, err
	}

	return s, nil
}

func (s Specification) Validate() error {
	return s.guard.Validate(ErrSpecificationIsNotConstructed)
}

func (s Specification) ServiceID() string              { return s.serviceID }
func (s Specification) MaterialID() string             { return s.materialID }
func (s Specification) Quantity() int                  { return s.quantity }
func (s Specification) Rush() bool                     { return s.rush }
func (s Specification) ShippingMethod() ShippingMethod { return s.shipping }
func (s Specification) Finish() Finish                 { return s.finish }
func (s Specification) Color() string                  { return s.color }
func (s Specification) Instructions() string           { return s.instructions }

func (s Specification) ModelFiles() []ModelFile {
	out := make([]ModelFile, len(s.files))
	copy(out, s.files)
	return out
}

// WeightGrams returns the estimated weight and whether one was given.
func (s Specification) WeightGrams() (float64, bool) {
	if s.weightGrams == nil {
		return 0, false
	}
	return *s.weightGrams, true
}

// PrintHours returns the estimated print time and whether one was given.
func (s Specification) PrintHours() (float64, bool) {
	if s.printHours == nil {
		return 0, false
	}
	return *s.printHours, true
}

// ClampedQuantity returns the quantity forced into [MinQuantity, maxQuantity].
func (s Specification) ClampedQuantity(maxQuantity int) int {
	return ClampQuantity(s.quantity, maxQuantity)
}

// WithClampedQuantity returns a copy whose quantity is stored clamped.
func (s Specification) WithClampedQuantity(maxQuantity int) Specification {
	s.quantity = ClampQuantity(s.quantity, maxQuantity)
	s.files = s.ModelFiles()
	return s
}

// ClampQuantity forces q into [MinQuantity, maxQuantity]. A maxQuantity below
// MinQuantity is treated as MinQuantity.
func ClampQuantity(q, maxQuantity int) int {
	maxQuantity = max(maxQuantity, MinQuantity)
	return min(max(q, MinQuantity), maxQuantity)
}

func (s *Specification) setServiceID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("service id")
	}
	s.serviceID = id
	return nil
}

func (s *Specification) setShipping(m ShippingMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.shipping = m
	return nil
}

func (s *Specification) setFinish(f Finish) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.finish = f
	return nil
}

func validateEstimate(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not a number", v))
	}
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(param, v, 0, math.Inf(1))
	}
	return nil
}
