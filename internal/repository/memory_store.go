package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

// MemoryStore is an in-memory DataStore seeded with a demo dataset. It is
// used for demo deployments and tests; data does not survive a restart.
type MemoryStore struct {
	mu sync.RWMutex

	students     []models.Student
	transactions []models.FinanceTransaction
	attendance   []models.AttendanceRecord
	profile      models.BusinessProfile
	accounts     []models.UserAccount
}

var _ DataStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded relative to now.
func NewMemoryStore(now time.Time) *MemoryStore {
	s := &MemoryStore{}
	s.seed(now)
	return s
}

func (s *MemoryStore) seed(now time.Time) {
	s.students = demoStudents(now)
	s.transactions = demoTransactions(now)
	s.attendance = demoAttendance(now)
	s.profile = demoProfile()
	if s.accounts == nil {
		s.accounts = demoAccounts(now)
	}
}

func (s *MemoryStore) Snapshot(_ context.Context) (models.AppDataSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.AppDataSnapshot{
		Students:     append([]models.Student(nil), s.students...),
		Transactions: append([]models.FinanceTransaction(nil), s.transactions...),
		Attendance:   append([]models.AttendanceRecord(nil), s.attendance...),
		Profile:      s.profile,
	}
	snap.Normalize()
	return snap, nil
}

func (s *MemoryStore) AddStudent(_ context.Context, input models.StudentInput) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student := models.Student{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Batch:      input.Batch,
		JoinDate:   ParseDate(input.JoinDate),
		Status:     input.Status,
		MonthlyFee: input.MonthlyFee,
		Teacher:    strings.TrimSpace(input.Teacher),
		CreatedAt:  time.Now().UTC(),
	}
	s.students = append(s.students, student)
	return &student, nil
}

func (s *MemoryStore) UpdateStudent(_ context.Context, id string, input models.StudentInput) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.students {
		if s.students[i].ID != id {
			continue
		}
		s.students[i].Name = strings.TrimSpace(input.Name)
		s.students[i].Phone = strings.TrimSpace(input.Phone)
		s.students[i].Batch = input.Batch
		s.students[i].JoinDate = ParseDate(input.JoinDate)
		s.students[i].Status = input.Status
		s.students[i].MonthlyFee = input.MonthlyFee
		s.students[i].Teacher = strings.TrimSpace(input.Teacher)
		student := s.students[i]
		return &student, nil
	}
	return nil, apperrors.ErrNotFound
}

// DeleteStudent removes the student, drops their attendance and clears the
// student link on finance rows. Financial history itself is preserved.
func (s *MemoryStore) DeleteStudent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	students := s.students[:0]
	for _, st := range s.students {
		if st.ID == id {
			found = true
			continue
		}
		students = append(students, st)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	s.students = students

	attendance := s.attendance[:0]
	for _, a := range s.attendance {
		if a.StudentID == id {
			continue
		}
		attendance = append(attendance, a)
	}
	s.attendance = attendance

	for i := range s.transactions {
		if s.transactions[i].StudentID == id {
			s.transactions[i].StudentID = ""
		}
	}
	return nil
}

func (s *MemoryStore) AddTransaction(_ context.Context, input models.TransactionInput) (*models.FinanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := models.FinanceTransaction{
		ID:          uuid.NewString(),
		Type:        input.Type,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        ParseDate(input.Date),
		Description: input.Description,
		StudentID:   input.StudentID,
		StudentName: input.StudentName,
		Status:      input.Status,
		Note:        input.Note,
		CreatedAt:   time.Now().UTC(),
	}
	if tx.StudentID != "" && tx.StudentName == "" {
		tx.StudentName = s.studentNameLocked(tx.StudentID)
	}
	s.transactions = append(s.transactions, tx)
	return &tx, nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, id string, input models.TransactionInput) (*models.FinanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		s.transactions[i].Type = input.Type
		s.transactions[i].Category = input.Category
		s.transactions[i].Amount = input.Amount
		s.transactions[i].Date = ParseDate(input.Date)
		s.transactions[i].Description = input.Description
		s.transactions[i].StudentID = input.StudentID
		s.transactions[i].StudentName = input.StudentName
		s.transactions[i].Status = input.Status
		s.transactions[i].Note = input.Note
		tx := s.transactions[i]
		return &tx, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *MemoryStore) ToggleTransactionStatus(_ context.Context, id string) (*models.FinanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		if s.transactions[i].Status == models.TransactionPaid {
			s.transactions[i].Status = models.TransactionPending
		} else {
			s.transactions[i].Status = models.TransactionPaid
		}
		tx := s.transactions[i]
		return &tx, nil
	}
	return nil, apperrors.ErrNotFound
}

// SaveAttendance upserts by (studentId, date): an existing record for the
// pair is overwritten in place, never duplicated.
func (s *MemoryStore) SaveAttendance(_ context.Context, date time.Time, entries []models.AttendanceDraft) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	index := make(map[string]int, len(s.attendance))
	for i, a := range s.attendance {
		if a.Date.Equal(day) {
			index[a.StudentID] = i
		}
	}

	for _, entry := range entries {
		if i, ok := index[entry.StudentID]; ok {
			s.attendance[i].Status = entry.Status
			s.attendance[i].Note = entry.Note
			continue
		}

		record := models.AttendanceRecord{
			ID:          uuid.NewString(),
			StudentID:   entry.StudentID,
			StudentName: "Unknown Student",
			Date:        day,
			Status:      entry.Status,
			Note:        entry.Note,
		}
		for _, st := range s.students {
			if st.ID == entry.StudentID {
				record.StudentName = st.Name
				record.Batch = st.Batch
				record.Teacher = st.Teacher
				break
			}
		}
		index[entry.StudentID] = len(s.attendance)
		s.attendance = append(s.attendance, record)
	}

	saved := make([]models.AttendanceRecord, 0, len(index))
	for _, a := range s.attendance {
		if a.Date.Equal(day) {
			saved = append(saved, a)
		}
	}
	return saved, nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, input models.ProfileInput) (*models.BusinessProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = models.BusinessProfile{
		Name:    strings.TrimSpace(input.Name),
		Owner:   strings.TrimSpace(input.Owner),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}
	profile := s.profile
	return &profile, nil
}

// ResetAllData discards everything and reseeds the demo dataset relative to
// the current date. User accounts are reset too.
func (s *MemoryStore) ResetAllData(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seed(time.Now().UTC())
	return nil
}

func (s *MemoryStore) ListUserAccess(_ context.Context) ([]models.UserAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.UserAccess, 0, len(s.accounts))
	for _, acc := range s.accounts {
		list = append(list, models.UserAccess{
			UserID:           acc.UserID,
			Email:            acc.Email,
			Role:             acc.Role,
			AssignedTeachers: append([]string(nil), acc.AssignedTeachers...),
			CreatedAt:        acc.CreatedAt,
		})
	}
	return list, nil
}

func (s *MemoryStore) CreateUserAccess(_ context.Context, input models.CreateUserInput) (*models.UserAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	for _, acc := range s.accounts {
		if strings.EqualFold(acc.Email, email) {
			return nil, apperrors.Clone(apperrors.ErrConflict, "a user with this email already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "hash password")
	}

	account := models.UserAccount{
		UserID:           uuid.NewString(),
		Email:            email,
		PasswordHash:     string(hash),
		Role:             models.AppRole(input.Role),
		AssignedTeachers: append([]string(nil), input.AssignedTeachers...),
		CreatedAt:        time.Now().UTC(),
	}
	s.accounts = append(s.accounts, account)

	return &models.UserAccess{
		UserID:           account.UserID,
		Email:            account.Email,
		Role:             account.Role,
		AssignedTeachers: append([]string(nil), account.AssignedTeachers...),
		CreatedAt:        account.CreatedAt,
	}, nil
}

func (s *MemoryStore) UpdateUserAccessRole(_ context.Context, userID string, input models.UpdateRoleInput) (*models.UserAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].UserID != userID {
			continue
		}
		s.accounts[i].Role = models.AppRole(input.Role)
		s.accounts[i].AssignedTeachers = append([]string(nil), input.AssignedTeachers...)
		return &models.UserAccess{
			UserID:           s.accounts[i].UserID,
			Email:            s.accounts[i].Email,
			Role:             s.accounts[i].Role,
			AssignedTeachers: append([]string(nil), s.accounts[i].AssignedTeachers...),
			CreatedAt:        s.accounts[i].CreatedAt,
		}, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) DeleteUserAccess(_ context.Context, userID, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].UserID != userID {
			continue
		}
		if mode == models.DeleteModeUser {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
		s.accounts[i].Role = ""
		s.accounts[i].AssignedTeachers = nil
		return nil
	}
	return apperrors.ErrNotFound
}

func (s *MemoryStore) AccountByEmail(_ context.Context, email string) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if strings.EqualFold(acc.Email, strings.TrimSpace(email)) {
			account := acc
			account.AssignedTeachers = append([]string(nil), acc.AssignedTeachers...)
			return &account, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) studentNameLocked(id string) string {
	for _, st := range s.students {
		if st.ID == id {
			return st.Name
		}
	}
	return "Unknown Student"
}
