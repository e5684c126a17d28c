package notifier

import (
	"context"
	"sync"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	eventBookingConfirmed = "booking.confirmed"
	eventBookingCancelled = "booking.cancelled"
)

type bookingEvent struct {
	Event         string `json:"event"`
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	Hospital      string `json:"hospital"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	Reason        string `json:"reason,omitempty"`
}

type queueNotifier struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

var (
	queueNotifierInstance contracts.NotifierService
	onceQueueNotifier     sync.Once
	queueNotifierError    error
)

func NewQueueNotifier(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.NotifierService, error) {
	onceQueueNotifier.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			queueNotifierError = err
			return
		}
		instance := &queueNotifier{
			Channel: channel,
			Queue:   queue,
			Log:     logger,
		}
		queueNotifierInstance = instance
	})
	return queueNotifierInstance, queueNotifierError
}

func (s *queueNotifier) NotifyBookingConfirmed(ctx context.Context, appointment *models.Appointment) {
	s.publish(ctx, &bookingEvent{
		Event:         eventBookingConfirmed,
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Hospital:      appointment.Hospital,
		Date:          appointment.Date,
		TimeSlot:      appointment.TimeSlot,
	})
}

func (s *queueNotifier) NotifyBookingCancelled(ctx context.Context, appointment *models.Appointment, reason string) {
	s.publish(ctx, &bookingEvent{
		Event:         eventBookingCancelled,
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Hospital:      appointment.Hospital,
		Date:          appointment.Date,
		TimeSlot:      appointment.TimeSlot,
		Reason:        reason,
	})
}

// publish is best effort. Notification delivery never fails a booking flow,
// failures are logged and the appointment state is left untouched.
func (s *queueNotifier) publish(ctx context.Context, event *bookingEvent) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(event)
	if err != nil {
		s.Log.Error("queueNotifier.publish error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("queueNotifier.publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, s.Queue),
			zap.Error(err),
		)
		return
	}

	s.Log.Info("queueNotifier.publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, s.Queue),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)
}
