package graphics

import "fmt"

type Format int

const (
	FormatCLUT8 Format = iota
	FormatRGB565
)

func (f Format) String() string {
	switch f {
	case FormatCLUT8:
		return "Format(CLUT8)"
	case FormatRGB565:
		return "Format(RGB565)"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// TransactionError is a set of failure bits; zero means success.
type TransactionError uint

const TransactionSuccess TransactionError = 0

const (
	TransactionSizeFailed TransactionError = 1 << iota
	TransactionFormatNotSupported
)

func (e TransactionError) Error() string {
	switch e {
	case TransactionSuccess:
		return "graphics: transaction succeeded"
	case TransactionSizeFailed:
		return "graphics: transaction size change failed"
	case TransactionFormatNotSupported:
		return "graphics: transaction format not supported"
	}
	return fmt.Sprintf("graphics: transaction failed (%#x)", uint(e))
}

type transactionDetails struct {
	width, height int
	format        Format
	sizeChanged   bool
}

// BeginTransaction starts batching InitSize calls.
func (m *Manager) BeginTransaction() {
	m.inTransaction = true
	m.pending.sizeChanged = false
}

// EndTransaction applies the last size requested since BeginTransaction, if
// any, as a single reallocation. Ending without a transaction is a no-op.
func (m *Manager) EndTransaction() TransactionError {
	if !m.inTransaction {
		return TransactionSuccess
	}
	m.inTransaction = false

	if !m.pending.sizeChanged {
		return TransactionSuccess
	}
	p := m.pending
	m.pending = transactionDetails{}

	var result TransactionError
	if p.format != FormatCLUT8 {
		result |= TransactionFormatNotSupported
	}
	if p.width <= 0 || p.height <= 0 {
		return result | TransactionSizeFailed
	}

	m.resize(p.width, p.height)
	return result
}
