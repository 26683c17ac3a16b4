package models

// The folds below assume at least two values; Values guarantees that.

func add(values []float64) float64 {
	acc := values[0]
	for _, v := range values[1:] {
		acc += v
	}
	return acc
}

func subtract(values []float64) float64 {
	acc := values[0]
	for _, v := range values[1:] {
		acc -= v
	}
	return acc
}

func multiply(values []float64) float64 {
	acc := values[0]
	for _, v := range values[1:] {
		acc *= v
	}
	return acc
}

// divide rejects a zero divisor anywhere in the tail before dividing.
func divide(values []float64) (float64, error) {
	for _, v := range values[1:] {
		if v == 0 {
			return 0, ErrDivisionByZero
		}
	}
	acc := values[0]
	for _, v := range values[1:] {
		acc /= v
	}
	return acc, nil
}
