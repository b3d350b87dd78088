package scheduling

import (
	"context"
	"sync"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	ledgerRepo "medibook/database/repository/ledger"
	"medibook/models"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Mongo repositories. Its ledger
// operations hold the lock across check-and-write, matching the atomicity the
// conditional Mongo updates provide.
type fakeStore struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	appts   map[string]*models.Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		doctors: map[string]*models.Doctor{},
		appts:   map[string]*models.Appointment{},
	}
}

func (f *fakeStore) addDoctor(d *models.Doctor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.BookedSlots == nil {
		d.BookedSlots = map[string][]string{}
	}
	f.doctors[d.ID] = d
}

func copyDoctor(d *models.Doctor) *models.Doctor {
	cp := *d
	cp.BookedSlots = make(map[string][]string, len(d.BookedSlots))
	for k, v := range d.BookedSlots {
		cp.BookedSlots[k] = append([]string(nil), v...)
	}
	cp.Availability = append([]models.DayRule(nil), d.Availability...)
	return &cp
}

// DoctorRepository

func (f *fakeStore) Create(_ context.Context, d *models.Doctor) error {
	f.addDoctor(d)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrNotFound
	}
	return copyDoctor(d), nil
}

func (f *fakeStore) SetAvailability(_ context.Context, id string, rules []models.DayRule, slotMinutes, breakMinutes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.doctors[id]
	if !ok {
		return doctorRepo.ErrNotFound
	}
	d.Availability = rules
	d.SlotMinutes = slotMinutes
	d.BreakMinutes = breakMinutes
	return nil
}

func (f *fakeStore) SetAvailable(_ context.Context, id string, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.doctors[id]
	if !ok {
		return doctorRepo.ErrNotFound
	}
	d.Available = available
	return nil
}

// AppointmentRepository

func (f *fakeStore) apptByID(id string) (*models.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) GetApptByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.apptByID(id)
	if err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkCompleted(_ context.Context, id, doctorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.apptByID(id)
	if err != nil || a.DoctorID != doctorID || a.Cancelled || a.IsCompleted {
		return appointmentRepo.ErrNoMatch
	}
	a.IsCompleted = true
	return nil
}

func (f *fakeStore) MarkPaid(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.apptByID(id)
	if err != nil || a.Cancelled {
		return appointmentRepo.ErrNoMatch
	}
	a.Payment = true
	a.PaymentMethod = models.PaymentMethodOnline
	return nil
}

// LedgerRepository

func (f *fakeStore) BookSlotTransactionally(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.doctors[appt.DoctorID]
	if !ok {
		return ledgerRepo.ErrDoctorNotFound
	}
	if !d.Available {
		return ledgerRepo.ErrDoctorUnavailable
	}
	key, label := string(appt.SlotDate), string(appt.SlotTime)
	for _, booked := range d.BookedSlots[key] {
		if booked == label {
			return ledgerRepo.ErrSlotTaken
		}
	}
	d.BookedSlots[key] = append(d.BookedSlots[key], label)
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeStore) CancelSlotTransactionally(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.apptByID(appt.ID)
	if err != nil || a.Cancelled || a.IsCompleted {
		return ledgerRepo.ErrNoMatch
	}
	a.Cancelled = true
	if d, ok := f.doctors[a.DoctorID]; ok {
		key, label := string(a.SlotDate), string(a.SlotTime)
		kept := d.BookedSlots[key][:0]
		for _, booked := range d.BookedSlots[key] {
			if booked != label {
				kept = append(kept, booked)
			}
		}
		d.BookedSlots[key] = kept
	}
	return nil
}

// apptRepoAdapter renames GetApptByID back to the interface's GetByID; the
// fakeStore cannot carry both GetByID signatures itself.
type apptRepoAdapter struct{ *fakeStore }

func (a apptRepoAdapter) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return a.GetApptByID(ctx, id)
}

type fakeReminders struct {
	mu        sync.Mutex
	scheduled []string
}

func (f *fakeReminders) ScheduleReminder(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, appt.ID)
	return nil
}

func newTestService(store *fakeStore, now time.Time) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		DoctorRepo: store,
		ApptRepo:   apptRepoAdapter{store},
		Ledger:     store,
		Clock:      func() time.Time { return now },
	}
}

func testAppt(doctorID string, date models.DateKey, label models.TimeLabel) *models.Appointment {
	return &models.Appointment{
		ID:        uuid.New().String(),
		DoctorID:  doctorID,
		PatientID: "pat-x",
		SlotDate:  date,
		SlotTime:  label,
	}
}

// weekTemplate builds a 7-day template with only the given weekdays enabled.
func weekTemplate(start, end int, enabled ...time.Weekday) []models.DayRule {
	on := map[int]bool{}
	for _, w := range enabled {
		on[int(w)] = true
	}
	rules := make([]models.DayRule, 7)
	for i := 0; i < 7; i++ {
		rules[i] = models.DayRule{Weekday: i, Enabled: on[i], Start: start, End: end}
	}
	return rules
}
