package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	"github.com/sagarmamodia/RemediX/internal/integrations/square"
	"github.com/sagarmamodia/RemediX/internal/service"
)

// The fakes below satisfy the repository and gateway interfaces with
// in-memory state. The *gorm.DB argument is passed through untouched by the
// usecases, so tests hand in nil.

var clinicZone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
	return loc
}()

// testMonday is 2026-09-07, a Monday, inside the default shift calendar.
func mondaySlot(hour, min int) (time.Time, time.Time) {
	start := time.Date(2026, time.September, 7, hour, min, 0, 0, clinicZone)
	return start, start.Add(30 * time.Minute)
}

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, time.September, 7, hour, min, 0, 0, clinicZone)
}

func testClock() *clock.Clock {
	c, err := clock.New("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
	return c
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// --- doctor repository ---

type fakeDoctorRepo struct {
	doctors      map[uuid.UUID]*entity.Doctor
	findErr      error
	availability map[uuid.UUID]bool

	slotQuery *slotQuery
	slotHits  []entity.Doctor
}

type slotQuery struct {
	specialty        string
	day              clock.Weekday
	startMin, endMin int
	start, end       time.Time
}

func newFakeDoctorRepo(doctors ...*entity.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{
		doctors:      make(map[uuid.UUID]*entity.Doctor),
		availability: make(map[uuid.UUID]bool),
	}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.doctors[id], nil
}

func (r *fakeDoctorRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range r.doctors {
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) FindAvailableForSlot(ctx context.Context, db *gorm.DB, specialty string, day clock.Weekday, startMin, endMin int, start, end time.Time) ([]entity.Doctor, error) {
	r.slotQuery = &slotQuery{specialty: specialty, day: day, startMin: startMin, endMin: endMin, start: start, end: end}
	return r.slotHits, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) UpdateAvailability(ctx context.Context, db *gorm.DB, id uuid.UUID, available bool) error {
	r.availability[id] = available
	if d, ok := r.doctors[id]; ok {
		d.Available = available
	}
	return nil
}

// --- patient repository ---

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo(patients ...*entity.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

// --- consultation repository ---

type fakeConsultationRepo struct {
	consultations map[uuid.UUID]*entity.Consultation
	payments      map[uuid.UUID]*entity.Payment
	createErr     error
}

func newFakeConsultationRepo(consultations ...*entity.Consultation) *fakeConsultationRepo {
	r := &fakeConsultationRepo{
		consultations: make(map[uuid.UUID]*entity.Consultation),
		payments:      make(map[uuid.UUID]*entity.Payment),
	}
	for _, c := range consultations {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.consultations[c.ID] = c
	}
	return r
}

func (r *fakeConsultationRepo) CreateWithPayment(ctx context.Context, db *gorm.DB, payment *entity.Payment, consultation *entity.Consultation) error {
	if r.createErr != nil {
		return r.createErr
	}
	payment.ID = uuid.New()
	consultation.ID = uuid.New()
	consultation.PaymentID = payment.ID
	r.payments[payment.ID] = payment
	r.consultations[consultation.ID] = consultation
	return nil
}

func (r *fakeConsultationRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	return r.consultations[id], nil
}

func (r *fakeConsultationRepo) FindPendingByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var out []entity.Consultation
	for _, c := range r.consultations {
		if c.DoctorID == doctorID && c.IsPending() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) FindPendingByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error) {
	var out []entity.Consultation
	for _, c := range r.consultations {
		if c.PatientID == patientID && c.IsPending() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) FindAllByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var out []entity.Consultation
	for _, c := range r.consultations {
		if c.DoctorID == doctorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) FindAllByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error) {
	var out []entity.Consultation
	for _, c := range r.consultations {
		if c.PatientID == patientID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) CountPendingByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.consultations {
		if c.DoctorID == doctorID && c.IsPending() {
			n++
		}
	}
	return n, nil
}

func (r *fakeConsultationRepo) UpdateSlot(ctx context.Context, db *gorm.DB, id uuid.UUID, start, end time.Time) error {
	c, ok := r.consultations[id]
	if !ok {
		return errors.New("not found")
	}
	c.StartTime, c.EndTime = start, end
	return nil
}

func (r *fakeConsultationRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.ConsultationStatus) error {
	c, ok := r.consultations[id]
	if !ok {
		return errors.New("not found")
	}
	c.Status = status
	return nil
}

func (r *fakeConsultationRepo) AttachRoom(ctx context.Context, db *gorm.DB, id uuid.UUID, roomID string) error {
	c, ok := r.consultations[id]
	if !ok {
		return errors.New("not found")
	}
	c.RoomID = &roomID
	return nil
}

func (r *fakeConsultationRepo) RemoveRoom(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	c, ok := r.consultations[id]
	if !ok {
		return errors.New("not found")
	}
	c.RoomID = nil
	return nil
}

func (r *fakeConsultationRepo) AttachPrescription(ctx context.Context, db *gorm.DB, id uuid.UUID, url string) error {
	c, ok := r.consultations[id]
	if !ok {
		return errors.New("not found")
	}
	c.PrescriptionURL = &url
	return nil
}

// --- payment gateway ---

type chargeCall struct {
	sourceID       string
	amount         int64
	idempotencyKey string
}

type refundCall struct {
	paymentID string
	amount    int64
}

type fakePaymentGateway struct {
	chargeErr error
	charges   []chargeCall
	refunds   []refundCall
}

func (g *fakePaymentGateway) CreatePayment(ctx context.Context, sourceID string, amount int64, idempotencyKey string) (*square.Charge, error) {
	g.charges = append(g.charges, chargeCall{sourceID: sourceID, amount: amount, idempotencyKey: idempotencyKey})
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	return &square.Charge{ID: "charge-" + idempotencyKey, Amount: amount}, nil
}

func (g *fakePaymentGateway) RefundPayment(ctx context.Context, paymentID string, amount int64, idempotencyKey string) error {
	g.refunds = append(g.refunds, refundCall{paymentID: paymentID, amount: amount})
	return nil
}

// --- notifier ---

type fakeNotifier struct {
	booked      []service.ConsultationBooked
	rescheduled []service.ConsultationRescheduled
	completed   []service.ConsultationCompleted
}

func (n *fakeNotifier) ConsultationBooked(ctx context.Context, event service.ConsultationBooked) {
	n.booked = append(n.booked, event)
}

func (n *fakeNotifier) ConsultationRescheduled(ctx context.Context, event service.ConsultationRescheduled) {
	n.rescheduled = append(n.rescheduled, event)
}

func (n *fakeNotifier) ConsultationCompleted(ctx context.Context, event service.ConsultationCompleted) {
	n.completed = append(n.completed, event)
}

// --- room service ---

type fakeRoomService struct {
	createCalls int
	createErr   error
	deactivated []string
}

func (r *fakeRoomService) CreateRoom(ctx context.Context) (string, error) {
	r.createCalls++
	if r.createErr != nil {
		return "", r.createErr
	}
	return "room-abc", nil
}

func (r *fakeRoomService) DeactivateRoom(ctx context.Context, roomID string) error {
	r.deactivated = append(r.deactivated, roomID)
	return nil
}

func (r *fakeRoomService) Token() (string, error) {
	return "room-token", nil
}

// --- entity helpers ---

func testDoctor(fee int64) *entity.Doctor {
	return &entity.Doctor{
		ID:        uuid.New(),
		Name:      "Dr. Asha Rao",
		Email:     "asha@clinic.test",
		Phone:     "9000000001",
		Specialty: "dermatology",
		Fee:       fee,
		Available: true,
		Shifts:    entity.DefaultShifts(),
	}
}
