package notify

import (
	"fmt"
	"log/slog"
	"time"
)

type eventKind int

const (
	eventBroadcast eventKind = iota
	eventTag
	eventUntag
)

type Event struct {
	Kind eventKind

	Title string
	Body  string

	AgendamentoID uint
	DataHora      time.Time
}

// Dispatcher desacopla a entrega de notificações do caminho da request:
// os handlers enfileiram e um worker entrega. Falha de entrega é logada e
// nunca vira erro para o chamador; fila cheia descarta o evento.
type Dispatcher struct {
	sender    *Sender
	onesignal *OneSignalClient
	log       *slog.Logger
	queue     chan Event
}

func NewDispatcher(sender *Sender, onesignal *OneSignalClient, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:    sender,
		onesignal: onesignal,
		log:       log,
		queue:     make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		switch ev.Kind {
		case eventBroadcast:
			d.sender.SendToAll(ev.Title, ev.Body)
			if err := d.onesignal.Send(ev.Title, ev.Body); err != nil {
				d.log.Error("onesignal send failed", "error", err)
			}

		case eventTag:
			d.onesignal.AddAppointmentTag(ev.AgendamentoID, ev.DataHora)

		case eventUntag:
			d.onesignal.RemoveAppointmentTag(ev.AgendamentoID)
		}
	}
}

func (d *Dispatcher) dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enfileirado
	default:
		// fila cheia: descartar, nunca travar a API
		d.log.Warn("notification queue full, dropping event")
	}
}

// Close drena a fila; só usar em shutdown e testes.
func (d *Dispatcher) Close() {
	close(d.queue)
}

func (d *Dispatcher) Broadcast(title, body string) {
	d.dispatch(Event{Kind: eventBroadcast, Title: title, Body: body})
}

func (d *Dispatcher) TagLembrete(agendamentoID uint, dataHora time.Time) {
	d.dispatch(Event{Kind: eventTag, AgendamentoID: agendamentoID, DataHora: dataHora})
}

func (d *Dispatcher) RemoveLembrete(agendamentoID uint) {
	d.dispatch(Event{Kind: eventUntag, AgendamentoID: agendamentoID})
}

// NotificarClienteInativo envia o template de reengajamento.
func (d *Dispatcher) NotificarClienteInativo(nomeCliente string) {
	d.Broadcast(
		"Sentimos sua falta! 💅",
		fmt.Sprintf(
			"Olá %s! Faz tempo que você não agenda um horário conosco. Que tal agendar seu próximo atendimento?",
			nomeCliente,
		),
	)
}
