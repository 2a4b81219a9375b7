package agendamento

import "time"

// Notifier é o contrato mínimo que o ciclo de vida do agendamento precisa
// do despachante de notificações: marcar e desmarcar o lembrete.
type Notifier interface {
	TagLembrete(agendamentoID uint, dataHora time.Time)
	RemoveLembrete(agendamentoID uint)
}
