package domain

// TransferEvent закрытое объединение входящих событий процессора выплат.
// Ровно два варианта; появление нового типа события потребует нового типа здесь
// и ветки в каждом switch по событию.
type TransferEvent interface {
	isTransferEvent()
	// TransferRef идентификатор трансфера на стороне процессора.
	TransferRef() string
	// CommissionRef id записи комиссии из метаданных события. 0 если процессор
	// метаданные не передал (батчевый трансфер), тогда поиск идет по TransferRef.
	CommissionRef() int64
}

// TransferCreatedEvent подтверждение создания трансфера (transfer.created).
type TransferCreatedEvent struct {
	TransferID   string
	CommissionID int64
}

// TransferReversedEvent реверс трансфера со стороны процессора (transfer.reversed).
type TransferReversedEvent struct {
	TransferID   string
	CommissionID int64
	Reason       string
}

func (TransferCreatedEvent) isTransferEvent()  {}
func (TransferReversedEvent) isTransferEvent() {}

func (e TransferCreatedEvent) TransferRef() string   { return e.TransferID }
func (e TransferCreatedEvent) CommissionRef() int64  { return e.CommissionID }
func (e TransferReversedEvent) TransferRef() string  { return e.TransferID }
func (e TransferReversedEvent) CommissionRef() int64 { return e.CommissionID }
