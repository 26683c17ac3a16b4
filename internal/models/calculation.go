package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Variant is a Calculation resolved to its concrete kind.
type Variant interface {
	Calc() *Calculation
	GetResult() (float64, error)
	variant()
}

type (
	Addition       struct{ *Calculation }
	Subtraction    struct{ *Calculation }
	Multiplication struct{ *Calculation }
	Division       struct{ *Calculation }
)

func (a Addition) Calc() *Calculation       { return a.Calculation }
func (s Subtraction) Calc() *Calculation    { return s.Calculation }
func (m Multiplication) Calc() *Calculation { return m.Calculation }
func (d Division) Calc() *Calculation       { return d.Calculation }

func (Addition) variant()       {}
func (Subtraction) variant()    {}
func (Multiplication) variant() {}
func (Division) variant()       {}

func (a Addition) GetResult() (float64, error) {
	values, err := a.Values()
	if err != nil {
		return 0, err
	}
	return add(values), nil
}

func (s Subtraction) GetResult() (float64, error) {
	values, err := s.Values()
	if err != nil {
		return 0, err
	}
	return subtract(values), nil
}

func (m Multiplication) GetResult() (float64, error) {
	values, err := m.Values()
	if err != nil {
		return 0, err
	}
	return multiply(values), nil
}

func (d Division) GetResult() (float64, error) {
	values, err := d.Values()
	if err != nil {
		return 0, err
	}
	return divide(values)
}

var constructors = map[Type]func(uuid.UUID, any) Variant{
	TypeAddition:       func(u uuid.UUID, in any) Variant { return NewAddition(u, in) },
	TypeSubtraction:    func(u uuid.UUID, in any) Variant { return NewSubtraction(u, in) },
	TypeMultiplication: func(u uuid.UUID, in any) Variant { return NewMultiplication(u, in) },
	TypeDivision:       func(u uuid.UUID, in any) Variant { return NewDivision(u, in) },
}

// Create builds an unpersisted calculation of the variant named by label.
// Neither userID nor inputs are checked here: the store enforces the owner
// and GetResult validates the inputs.
func Create(label string, userID uuid.UUID, inputs any) (Variant, error) {
	build, ok := constructors[Type(label)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, label)
	}
	return build(userID, inputs), nil
}

func NewAddition(userID uuid.UUID, inputs any) Addition {
	return Addition{newCalculation(TypeAddition, userID, inputs)}
}

func NewSubtraction(userID uuid.UUID, inputs any) Subtraction {
	return Subtraction{newCalculation(TypeSubtraction, userID, inputs)}
}

func NewMultiplication(userID uuid.UUID, inputs any) Multiplication {
	return Multiplication{newCalculation(TypeMultiplication, userID, inputs)}
}

func NewDivision(userID uuid.UUID, inputs any) Division {
	return Division{newCalculation(TypeDivision, userID, inputs)}
}

func newCalculation(t Type, userID uuid.UUID, inputs any) *Calculation {
	return &Calculation{
		UserID: userID,
		Type:   t,
		Inputs: encodeInputs(inputs),
	}
}

// Resolve returns the concrete variant for a loaded record.
func Resolve(c *Calculation) (Variant, error) {
	switch c.Type {
	case TypeAddition:
		return Addition{c}, nil
	case TypeSubtraction:
		return Subtraction{c}, nil
	case TypeMultiplication:
		return Multiplication{c}, nil
	case TypeDivision:
		return Division{c}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, c.Type)
}

// GetResult dispatches on the discriminator.
func (c *Calculation) GetResult() (float64, error) {
	v, err := Resolve(c)
	if err != nil {
		return 0, err
	}
	return v.GetResult()
}

// CacheResult computes the result and keeps it on the record. On failure the
// previously cached value is left as it was.
func (c *Calculation) CacheResult() (float64, error) {
	r, err := c.GetResult()
	if err != nil {
		return 0, err
	}
	c.Result = &r
	return r, nil
}

// SetInputs replaces the inputs and drops any cached result.
func (c *Calculation) SetInputs(inputs any) {
	c.Inputs = encodeInputs(inputs)
	c.Result = nil
}

// Values decodes the stored inputs. It is evaluated from the raw column on
// every call, so records loaded from the store are checked the same way as
// freshly built ones.
func (c *Calculation) Values() ([]float64, error) {
	var raw any
	if len(c.Inputs) == 0 {
		return nil, fmt.Errorf("%w: inputs must be a list", ErrInvalidInputs)
	}
	if err := json.Unmarshal(c.Inputs, &raw); err != nil {
		return nil, fmt.Errorf("%w: inputs must be a list", ErrInvalidInputs)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: inputs must be a list", ErrInvalidInputs)
	}
	if len(list) < 2 {
		return nil, fmt.Errorf("%w: at least two inputs are required, got %d", ErrInvalidInputs, len(list))
	}

	values := make([]float64, len(list))
	for i, item := range list {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: inputs must be numbers, element %d is %T", ErrInvalidInputs, i, item)
		}
		values[i] = f
	}
	return values, nil
}

// Expression renders the calculation as an infix string, e.g. "20 - 5 - 3".
// Malformed inputs are rendered verbatim.
func (c *Calculation) Expression() string {
	values, err := c.Values()
	if err != nil {
		return fmt.Sprintf("%s(%s)", c.Type, string(c.Inputs))
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " "+c.Type.operator()+" ")
}

func encodeInputs(inputs any) datatypes.JSON {
	switch v := inputs.(type) {
	case datatypes.JSON:
		return v
	case json.RawMessage:
		return datatypes.JSON(v)
	}
	b, err := json.Marshal(inputs)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}
