package service

import "github.com/shopspring/decimal"

// floorSub вычитает b из a с полом в ноль. Второе значение true если сработал
// пол - сигнал возможного двойного реверса или потерянного промежуточного
// состояния, который нельзя терять молча.
func floorSub(a, b decimal.Decimal) (decimal.Decimal, bool) {
	res := a.Sub(b)
	if res.IsNegative() {
		return decimal.Zero, true
	}
	return res, false
}
