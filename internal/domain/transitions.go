package domain

// allowedTransitions таблица разрешенных переходов статусов записи комиссии.
// Единственное обратное ребро paid -> approved существует для реверса трансфера
// со стороны процессора выплат.
var allowedTransitions = map[CommissionStatusType][]CommissionStatusType{
	CommissionStatusPending:   {CommissionStatusApproved, CommissionStatusCancelled},
	CommissionStatusApproved:  {CommissionStatusPaid, CommissionStatusCancelled},
	CommissionStatusPaid:      {CommissionStatusApproved},
	CommissionStatusCancelled: {},
}

// CanTransit проверяет переход from -> to по таблице allowedTransitions.
func CanTransit(from, to CommissionStatusType) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EnsureTransit возвращает *InvalidTransitionError если переход запрещен.
// Вызывается в каждом месте мутации статуса, до записи в БД.
func EnsureTransit(from, to CommissionStatusType) error {
	if !CanTransit(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
