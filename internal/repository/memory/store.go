// Package memory provides in-memory implementations of the domain
// repositories. Uniqueness and transaction rollback behave like the
// PostgreSQL implementations so use cases can be exercised without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-hospital-booking/internal/domain/entity"
	domainRepo "go-hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
)

type userRecord struct {
	user entity.User
	seq  int64
}

type bookingRecord struct {
	booking entity.Booking
	seq     int64
}

// Store holds users, bookings and audit logs behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]userRecord
	bookings map[uuid.UUID]bookingRecord
	audits   []entity.AuditLog
	seq      int64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]userRecord),
		bookings: make(map[uuid.UUID]bookingRecord),
		now:      time.Now,
	}
}

func (s *Store) Users() domainRepo.UserRepository         { return userRepository{s} }
func (s *Store) Bookings() domainRepo.BookingRepository   { return bookingRepository{s} }
func (s *Store) AuditLogs() domainRepo.AuditLogRepository { return auditLogRepository{s} }
func (s *Store) Transactor() domainRepo.Transactor        { return transactor{s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	users    map[uuid.UUID]userRecord
	bookings map[uuid.UUID]bookingRecord
	audits   []entity.AuditLog
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		users:    make(map[uuid.UUID]userRecord, len(s.users)),
		bookings: make(map[uuid.UUID]bookingRecord, len(s.bookings)),
		audits:   append([]entity.AuditLog(nil), s.audits...),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.bookings = snap.bookings
	s.audits = snap.audits
}

// Transactor

type txKey struct{}

type transactor struct{ s *Store }

func (t transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	snap := t.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// Users

type userRepository struct{ s *Store }

func (r userRepository) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkUnique(user); err != nil {
		return err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = entity.RolePatient
	}
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = userRecord{user: *user, seq: r.s.nextSeq()}
	return nil
}

func (r userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r userRepository) FindConflicting(ctx context.Context, username, email string, excludeID uuid.UUID) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, nil
	}
	return r.find(func(u *entity.User) bool {
		if u.ID == excludeID {
			return false
		}
		return (username != "" && u.Username == username) || (email != "" && u.Email == email)
	}), nil
}

func (r userRepository) FindDoctorByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id && u.IsDoctor() }), nil
}

func (r userRepository) FindDoctors(ctx context.Context, filter entity.DoctorFilter) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var records []userRecord
	for _, rec := range r.s.users {
		if !rec.user.IsDoctor() {
			continue
		}
		if filter.Speciality != "" && rec.user.Speciality != filter.Speciality {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq > records[j].seq })

	doctors := make([]entity.User, len(records))
	for i, rec := range records {
		doctors[i] = rec.user
	}
	return doctors, nil
}

func (r userRepository) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[user.ID]
	if !ok {
		return nil
	}
	if err := r.s.checkUnique(user); err != nil {
		return err
	}
	user.UpdatedAt = r.s.now()
	rec.user = *user
	r.s.users[user.ID] = rec
	return nil
}

func (r userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return 0, nil
	}
	delete(r.s.users, id)
	for i := range r.s.audits {
		if r.s.audits[i].UserID != nil && *r.s.audits[i].UserID == id {
			r.s.audits[i].UserID = nil
		}
	}
	return 1, nil
}

func (r userRepository) find(match func(u *entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.users {
		u := rec.user
		if match(&u) {
			return &u
		}
	}
	return nil
}

// checkUnique mirrors the unique indexes on users. Caller holds the lock.
func (s *Store) checkUnique(user *entity.User) error {
	for id, rec := range s.users {
		if id == user.ID {
			continue
		}
		if rec.user.Email == user.Email {
			return domainRepo.ErrDuplicateEmail
		}
		if rec.user.Username == user.Username {
			return domainRepo.ErrDuplicateUsername
		}
	}
	return nil
}

// Bookings

type bookingRepository struct{ s *Store }

func (r bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.Status == "" {
		booking.Status = entity.BookingStatusPending
	}
	now := r.s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	stored := *booking
	stored.Patient = nil
	stored.Doctor = nil
	r.s.bookings[booking.ID] = bookingRecord{booking: stored, seq: r.s.nextSeq()}
	return nil
}

func (r bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	b := r.s.join(rec.booking)
	return &b, nil
}

func (r bookingRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Booking, error) {
	return r.list(func(b *entity.Booking) bool { return b.PatientID == patientID }), nil
}

func (r bookingRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Booking, error) {
	return r.list(func(b *entity.Booking) bool { return b.DoctorID == doctorID }), nil
}

func (r bookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	return r.list(func(*entity.Booking) bool { return true }), nil
}

func (r bookingRepository) UpdateStatus(ctx context.Context, id, doctorID uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.bookings[id]
	if !ok || rec.booking.DoctorID != doctorID || rec.booking.Status != from {
		return 0, nil
	}
	rec.booking.Status = to
	rec.booking.UpdatedAt = r.s.now()
	r.s.bookings[id] = rec
	return 1, nil
}

func (r bookingRepository) DeleteByDoctorID(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var affected int64
	for id, rec := range r.s.bookings {
		if rec.booking.DoctorID == doctorID {
			delete(r.s.bookings, id)
			affected++
		}
	}
	return affected, nil
}

func (r bookingRepository) list(match func(b *entity.Booking) bool) []entity.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var records []bookingRecord
	for _, rec := range r.s.bookings {
		b := rec.booking
		if match(&b) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq > records[j].seq })

	bookings := make([]entity.Booking, len(records))
	for i, rec := range records {
		bookings[i] = r.s.join(rec.booking)
	}
	return bookings
}

// join attaches patient and doctor records. Caller holds the lock.
func (s *Store) join(b entity.Booking) entity.Booking {
	if rec, ok := s.users[b.PatientID]; ok {
		patient := rec.user
		b.Patient = &patient
	}
	if rec, ok := s.users[b.DoctorID]; ok {
		doctor := rec.user
		b.Doctor = &doctor
	}
	return b
}

// Audit logs

type auditLogRepository struct{ s *Store }

func (r auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = int64(len(r.s.audits) + 1)
	log.CreatedAt = r.s.now()
	stored := *log
	stored.User = nil
	r.s.audits = append(r.s.audits, stored)
	return nil
}

func (r auditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	logs := make([]entity.AuditLog, 0, len(r.s.audits))
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		logs = append(logs, r.s.withActor(r.s.audits[i]))
	}
	return logs, nil
}

func (r auditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, log := range r.s.audits {
		if log.ID == id {
			out := r.s.withActor(log)
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) withActor(log entity.AuditLog) entity.AuditLog {
	if log.UserID != nil {
		if rec, ok := s.users[*log.UserID]; ok {
			actor := rec.user
			log.User = &actor
		}
	}
	return log
}
