package workbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellValueEqual(t *testing.T) {
	d := time.Date(2024, 3, 15, 13, 45, 0, 0, time.Local)

	assert.True(t, NewText("a").Equal(NewText("a")))
	assert.False(t, NewText("a").Equal(NewText("b")))
	assert.True(t, NewNumber(1.5).Equal(NewNumber(1.5)))
	assert.True(t, NewBool(true).Equal(NewBool(true)))
	assert.False(t, NewBool(true).Equal(NewBool(false)))
	assert.True(t, Empty().Equal(Empty()))

	// Dates compare by calendar day, the time component is discarded.
	assert.True(t, NewDate(d).Equal(NewDate(d.Add(3*time.Hour))))
	assert.False(t, NewDate(d).Equal(NewDate(d.AddDate(0, 0, 1))))
}

func TestCellValueCrossKindNeverEqual(t *testing.T) {
	// The text "1" and the number 1 stringify the same but stay distinct.
	assert.False(t, NewText("1").Equal(NewNumber(1)))
	assert.False(t, NewText("").Equal(Empty()))
	assert.False(t, NewText("TRUE").Equal(NewBool(true)))
}

func TestCellValueLess(t *testing.T) {
	// Within a kind, payload order.
	assert.True(t, NewText("a").Less(NewText("b")))
	assert.True(t, NewNumber(1).Less(NewNumber(2)))
	assert.True(t, NewBool(false).Less(NewBool(true)))
	assert.True(t, NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
		Less(NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))))

	// Across kinds, kind order decides.
	assert.True(t, Empty().Less(NewText("")))
	assert.True(t, NewText("z").Less(NewNumber(0)))
	assert.False(t, NewNumber(2).Less(NewNumber(1)))
}

func TestCellValueString(t *testing.T) {
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "hello", NewText("hello").String())
	assert.Equal(t, "1.5", NewNumber(1.5).String())
	assert.Equal(t, "10", NewNumber(10).String())
	assert.Equal(t, "TRUE", NewBool(true).String())
	assert.Equal(t, "FALSE", NewBool(false).String())
	assert.Equal(t, "2024-03-15", NewDate(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)).String())
}

func TestRowCell(t *testing.T) {
	row := Row{0: NewText("x")}
	assert.Equal(t, NewText("x"), row.Cell(0))
	assert.True(t, row.Cell(5).IsEmpty())
}
