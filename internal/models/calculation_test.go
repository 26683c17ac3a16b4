package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_ReturnsMatchingVariant(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	tests := []struct {
		label string
		check func(Variant) bool
	}{
		{"addition", func(v Variant) bool { _, ok := v.(Addition); return ok }},
		{"subtraction", func(v Variant) bool { _, ok := v.(Subtraction); return ok }},
		{"multiplication", func(v Variant) bool { _, ok := v.(Multiplication); return ok }},
		{"division", func(v Variant) bool { _, ok := v.(Division); return ok }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			v, err := Create(tt.label, userID, []float64{1, 2})
			require.NoError(t, err)
			assert.True(t, tt.check(v), "unexpected variant %T", v)
			assert.Equal(t, Type(tt.label), v.Calc().Type)
			assert.Equal(t, userID, v.Calc().UserID)
			assert.Equal(t, uuid.Nil, v.Calc().ID)
			assert.Nil(t, v.Calc().Result)
		})
	}
}

func TestCreate_UnsupportedType(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"bogus", "Addition", "", "modulus"} {
		v, err := Create(label, uuid.New(), []float64{1, 2})
		assert.ErrorIs(t, err, ErrUnsupportedType, "label %q", label)
		assert.Nil(t, v)
	}
}

func TestCreate_StoresInputsVerbatim(t *testing.T) {
	t.Parallel()

	v, err := Create("addition", uuid.New(), "not-a-list")
	require.NoError(t, err)
	assert.JSONEq(t, `"not-a-list"`, string(v.Calc().Inputs))

	v, err = Create("division", uuid.New(), []any{100, 0})
	require.NoError(t, err)
	assert.JSONEq(t, `[100, 0]`, string(v.Calc().Inputs))
}

func TestGetResult(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	tests := []struct {
		name string
		v    Variant
		want float64
	}{
		{"addition", NewAddition(userID, []float64{10.5, 3, 2}), 15.5},
		{"addition negatives", NewAddition(userID, []float64{-5, -10, 3}), -12},
		{"subtraction", NewSubtraction(userID, []float64{20, 5, 3}), 12},
		{"multiplication", NewMultiplication(userID, []float64{2, 3, 4}), 24},
		{"division", NewDivision(userID, []float64{100, 2, 5}), 10},
		{"ints", NewAddition(userID, []int{1, 2, 3}), 6},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.v.GetResult()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// dispatch through the base record gives the same answer
			viaBase, err := tt.v.Calc().GetResult()
			require.NoError(t, err)
			assert.Equal(t, got, viaBase)
		})
	}
}

func TestGetResult_RepeatingFraction(t *testing.T) {
	t.Parallel()

	got, err := NewDivision(uuid.New(), []float64{1, 3}).GetResult()
	require.NoError(t, err)
	assert.InDelta(t, 0.33333333, got, 1e-5)
}

func TestGetResult_Idempotent(t *testing.T) {
	t.Parallel()

	v := NewDivision(uuid.New(), []float64{1, 7, 3})
	first, err := v.GetResult()
	require.NoError(t, err)
	second, err := v.GetResult()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetResult_DivisionByZero(t *testing.T) {
	t.Parallel()

	for _, inputs := range [][]float64{{100, 0}, {100, 5, 0}, {0, 2, 0}} {
		_, err := NewDivision(uuid.New(), inputs).GetResult()
		assert.ErrorIs(t, err, ErrDivisionByZero, "inputs %v", inputs)
		assert.ErrorContains(t, err, "cannot divide by zero")
	}

	got, err := NewDivision(uuid.New(), []float64{0, 4}).GetResult()
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestGetResult_InvalidInputs(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	tests := []struct {
		name   string
		inputs any
		msg    string
	}{
		{"string", "not-a-list", "inputs must be a list"},
		{"object", map[string]int{"a": 1}, "inputs must be a list"},
		{"nil", nil, "inputs must be a list"},
		{"unencodable", make(chan int), "inputs must be a list"},
		{"mixed", []any{1, "two"}, "inputs must be numbers"},
		{"empty", []float64{}, "at least two inputs"},
		{"single", []float64{42}, "at least two inputs"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, v := range []Variant{
				NewAddition(userID, tt.inputs),
				NewSubtraction(userID, tt.inputs),
				NewMultiplication(userID, tt.inputs),
				NewDivision(userID, tt.inputs),
			} {
				_, err := v.GetResult()
				assert.ErrorIs(t, err, ErrInvalidInputs)
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestGetResult_ValidatesRawColumn(t *testing.T) {
	t.Parallel()

	// a record as it would come back from the store, never built by a constructor
	c := &Calculation{Type: TypeAddition, Inputs: []byte(`"not-a-list"`)}
	_, err := c.GetResult()
	assert.ErrorIs(t, err, ErrInvalidInputs)

	c.Inputs = []byte(`[1, 2.5]`)
	got, err := c.GetResult()
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)

	c.Inputs = []byte(`{broken`)
	_, err = c.GetResult()
	assert.ErrorIs(t, err, ErrInvalidInputs)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	for _, typ := range Types() {
		v, err := Resolve(&Calculation{Type: typ})
		require.NoError(t, err)
		assert.Equal(t, typ, v.Calc().Type)
	}

	_, err := Resolve(&Calculation{Type: "power"})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = (&Calculation{Type: "power", Inputs: []byte(`[1,2]`)}).GetResult()
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCacheResult(t *testing.T) {
	t.Parallel()

	v := NewAddition(uuid.New(), []float64{5, 10})
	got, err := v.Calc().CacheResult()
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)
	require.NotNil(t, v.Calc().Result)
	assert.Equal(t, 15.0, *v.Calc().Result)

	v.Calc().Inputs = []byte(`"oops"`)
	_, err = v.Calc().CacheResult()
	require.Error(t, err)
	assert.Equal(t, 15.0, *v.Calc().Result, "failed computation must keep the old cache")
}

func TestSetInputs_DropsCachedResult(t *testing.T) {
	t.Parallel()

	v := NewMultiplication(uuid.New(), []float64{2, 3})
	_, err := v.Calc().CacheResult()
	require.NoError(t, err)

	v.Calc().SetInputs([]float64{4, 5})
	assert.Nil(t, v.Calc().Result)

	got, err := v.GetResult()
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)
}

func TestExpression(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	assert.Equal(t, "20 - 5 - 3", NewSubtraction(userID, []float64{20, 5, 3}).Expression())
	assert.Equal(t, "10.5 + 3 + 2", NewAddition(userID, []float64{10.5, 3, 2}).Expression())
	assert.Equal(t, "100 / 0", NewDivision(userID, []float64{100, 0}).Expression())
	assert.Equal(t, `addition("x")`, NewAddition(userID, "x").Expression())
}

func TestInputsRoundTripJSON(t *testing.T) {
	t.Parallel()

	large := make([]float64, 100)
	for i := range large {
		large[i] = float64(i + 1)
	}
	v := NewAddition(uuid.New(), large)

	var decoded []float64
	require.NoError(t, json.Unmarshal(v.Calc().Inputs, &decoded))
	assert.Equal(t, large, decoded)

	got, err := v.GetResult()
	require.NoError(t, err)
	assert.Equal(t, 5050.0, got)
}
