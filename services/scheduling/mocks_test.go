package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "medvault/database/repository/appointment"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. They mirror the Mongo repos' observable
// behaviour: missing documents surface mongo.ErrNoDocuments and a second
// blocking write on the same slotKey surfaces ErrSlotOccupied.

type fakeAvailabilityRepo struct {
	mu     sync.Mutex
	ranges map[string]models.AvailabilityRange
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{ranges: make(map[string]models.AvailabilityRange)}
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, r *models.AvailabilityRange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges[r.ID] = *r
	return nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id string) (*models.AvailabilityRange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.ranges[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &r, nil
}

func (f *fakeAvailabilityRepo) Update(_ context.Context, r *models.AvailabilityRange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges[r.ID] = *r
	return nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ranges, id)
	return nil
}

func (f *fakeAvailabilityRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.AvailabilityRange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityRange
	for _, r := range f.ranges {
		if r.Doctor == doctorID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeAvailabilityRepo) ListByDoctorAndDay(_ context.Context, doctorID, day string) ([]models.AvailabilityRange, error) {
	all, _ := f.ListByDoctor(context.Background(), doctorID)
	var out []models.AvailabilityRange
	for _, r := range all {
		if r.Day == day {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.Blocking {
		for _, existing := range f.appts {
			if existing.Blocking && existing.SlotKey == a.SlotKey {
				return appointmentRepo.ErrSlotOccupied
			}
		}
	}
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &a, nil
}

func (f *fakeAppointmentRepo) SetStatus(_ context.Context, id, status string, blocking bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if blocking && !a.Blocking {
		for _, existing := range f.appts {
			if existing.ID != id && existing.Blocking && existing.SlotKey == a.SlotKey {
				return appointmentRepo.ErrSlotOccupied
			}
		}
	}
	a.Status = status
	a.Blocking = blocking
	f.appts[id] = a
	return nil
}

func (f *fakeAppointmentRepo) FindBlockingInWindow(_ context.Context, doctorID string, start, end time.Time) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.Doctor == doctorID && a.Blocking && !a.Date.Before(start) && a.Date.Before(end) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListBlockingOnDay(_ context.Context, doctorID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Doctor == doctorID && a.Blocking && !a.Date.Before(dayStart) && a.Date.Before(dayEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Doctor == doctorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeAppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Patient == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetByVerifyToken(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.EmailVerifyToken == token {
			found := u
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetManyByID(_ context.Context, ids []string) (map[string]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) ListProfessionals(context.Context, string, string) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CreatePatientProfile(context.Context, *models.PatientProfile) error { return nil }
func (f *fakeUserRepo) CreateProfessionalProfile(context.Context, *models.ProfessionalProfile) error {
	return nil
}
func (f *fakeUserRepo) GetPatientProfile(context.Context, string) (*models.PatientProfile, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) GetProfessionalProfile(context.Context, string) (*models.ProfessionalProfile, error) {
	return nil, mongo.ErrNoDocuments
}
func (f *fakeUserRepo) UpdatePatientProfile(context.Context, *models.PatientProfile) error {
	return nil
}
func (f *fakeUserRepo) UpdateProfessionalProfile(context.Context, *models.ProfessionalProfile) error {
	return nil
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	items map[string]models.Feedback // keyed by appointment ID
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{items: make(map[string]models.Feedback)}
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb *models.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[fb.AppointmentID] = *fb
	return nil
}

func (f *fakeFeedbackRepo) GetByAppointment(_ context.Context, appointmentID string) (*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fb, ok := f.items[appointmentID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &fb, nil
}

func (f *fakeFeedbackRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Feedback
	for _, fb := range f.items {
		if fb.Doctor == doctorID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) AppointmentIDsWithFeedback(_ context.Context, appointmentIDs []string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool)
	for _, id := range appointmentIDs {
		if _, ok := f.items[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// sinkRecorder captures notifications handed to the Sink.
type sinkRecorder struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (s *sinkRecorder) Notify(_ context.Context, n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

func (s *sinkRecorder) last() (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return models.Notification{}, false
	}
	return s.sent[len(s.sent)-1], true
}
