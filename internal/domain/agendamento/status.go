package agendamento

// ===============================
// Status do agendamento
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// PontosPorAtendimento é o bônus de fidelidade creditado uma única vez
// quando o agendamento transita para "done".
const PontosPorAtendimento = 10

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Ativo indica que o agendamento ainda vai acontecer e deve
// manter a tag de lembrete no provedor de push.
func (s Status) Ativo() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DeveCreditarPontos aplica a regra de fidelidade: só a transição
// que CHEGA em "done" credita; re-salvar um "done" não credita de novo.
func DeveCreditarPontos(anterior, novo Status) bool {
	return anterior != StatusDone && novo == StatusDone
}
