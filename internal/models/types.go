package models

// Type is the discriminator stored in calculations.type.
type Type string

const (
	TypeAddition       Type = "addition"
	TypeSubtraction    Type = "subtraction"
	TypeMultiplication Type = "multiplication"
	TypeDivision       Type = "division"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case TypeAddition, TypeSubtraction, TypeMultiplication, TypeDivision:
		return true
	}
	return false
}

// Types lists every supported discriminator in declaration order.
func Types() []Type {
	return []Type{TypeAddition, TypeSubtraction, TypeMultiplication, TypeDivision}
}

func (t Type) operator() string {
	switch t {
	case TypeAddition:
		return "+"
	case TypeSubtraction:
		return "-"
	case TypeMultiplication:
		return "*"
	case TypeDivision:
		return "/"
	}
	return "?"
}
