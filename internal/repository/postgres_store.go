package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

// PostgresStore is the persistent DataStore. It tolerates older schemas:
// a missing table yields an empty collection and a missing optional column
// triggers a reduced-column fallback instead of an error.
type PostgresStore struct {
	db                *sqlx.DB
	defaultMonthlyFee float64
}

var _ DataStore = (*PostgresStore)(nil)

func NewPostgresStore(db *sqlx.DB, defaultMonthlyFee float64) *PostgresStore {
	if defaultMonthlyFee <= 0 {
		defaultMonthlyFee = models.DefaultMonthlyFee
	}
	return &PostgresStore{db: db, defaultMonthlyFee: defaultMonthlyFee}
}

// --- error classification ---

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}

func isUndefinedColumn(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42703"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// classify folds transport failures into one actionable error so handlers
// can tell "database down" apart from a real query problem.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "connection reset") {
		return apperrors.Wrap(err, apperrors.ErrStoreUnavailable.Code, apperrors.ErrStoreUnavailable.Status, apperrors.ErrStoreUnavailable.Message)
	}
	return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, op)
}

// --- row types ---

type studentRow struct {
	ID         string          `db:"id"`
	Name       sql.NullString  `db:"name"`
	Phone      sql.NullString  `db:"phone"`
	Batch      sql.NullString  `db:"batch"`
	JoinDate   sql.NullTime    `db:"join_date"`
	Status     sql.NullString  `db:"status"`
	MonthlyFee sql.NullFloat64 `db:"monthly_fee"`
	Teacher    sql.NullString  `db:"teacher"`
	CreatedAt  sql.NullTime    `db:"created_at"`
}

func (s *PostgresStore) mapStudent(r studentRow) models.Student {
	student := models.Student{
		ID:         r.ID,
		Name:       r.Name.String,
		Phone:      r.Phone.String,
		Batch:      models.BatchMorning,
		Status:     models.StudentActive,
		MonthlyFee: s.defaultMonthlyFee,
		Teacher:    r.Teacher.String,
	}
	if r.Batch.Valid && r.Batch.String != "" {
		student.Batch = r.Batch.String
	}
	if r.Status.Valid && r.Status.String != "" {
		student.Status = r.Status.String
	}
	if r.MonthlyFee.Valid {
		student.MonthlyFee = r.MonthlyFee.Float64
	}
	if r.JoinDate.Valid {
		student.JoinDate = r.JoinDate.Time
	}
	if r.CreatedAt.Valid {
		student.CreatedAt = r.CreatedAt.Time
	}
	return student
}

type transactionRow struct {
	ID          string          `db:"id"`
	Type        sql.NullString  `db:"type"`
	Category    sql.NullString  `db:"category"`
	Amount      sql.NullFloat64 `db:"amount"`
	Date        sql.NullTime    `db:"date"`
	Description sql.NullString  `db:"description"`
	StudentID   sql.NullString  `db:"student_id"`
	StudentName sql.NullString  `db:"student_name"`
	Status      sql.NullString  `db:"status"`
	Note        sql.NullString  `db:"note"`
	CreatedAt   sql.NullTime    `db:"created_at"`
}

func mapTransaction(r transactionRow) models.FinanceTransaction {
	tx := models.FinanceTransaction{
		ID:          r.ID,
		Type:        r.Type.String,
		Category:    r.Category.String,
		Amount:      r.Amount.Float64, // invalid -> 0
		Description: r.Description.String,
		StudentID:   r.StudentID.String,
		StudentName: r.StudentName.String,
		Status:      models.TransactionPaid,
		Note:        r.Note.String,
	}
	if r.Status.Valid && r.Status.String != "" {
		tx.Status = r.Status.String
	}
	if r.Date.Valid {
		tx.Date = r.Date.Time
	}
	if r.CreatedAt.Valid {
		tx.CreatedAt = r.CreatedAt.Time
	}
	return tx
}

type attendanceRow struct {
	ID          string         `db:"id"`
	StudentID   sql.NullString `db:"student_id"`
	StudentName sql.NullString `db:"student_name"`
	Batch       sql.NullString `db:"batch"`
	Teacher     sql.NullString `db:"teacher"`
	Date        sql.NullTime   `db:"attendance_date"`
	Status      sql.NullString `db:"status"`
	Note        sql.NullString `db:"note"`
}

// --- snapshot ---

func (s *PostgresStore) Snapshot(ctx context.Context) (models.AppDataSnapshot, error) {
	students, err := s.selectStudents(ctx)
	if err != nil {
		return models.AppDataSnapshot{}, err
	}

	meta := make(map[string]models.Student, len(students))
	for _, st := range students {
		meta[st.ID] = st
	}

	transactions, err := s.selectTransactions(ctx, meta)
	if err != nil {
		return models.AppDataSnapshot{}, err
	}

	attendance, err := s.selectAttendance(ctx, meta)
	if err != nil {
		return models.AppDataSnapshot{}, err
	}

	profile, err := s.selectProfile(ctx)
	if err != nil {
		return models.AppDataSnapshot{}, err
	}

	snap := models.AppDataSnapshot{
		Students:     students,
		Transactions: transactions,
		Attendance:   attendance,
		Profile:      profile,
	}
	snap.Normalize()
	return snap, nil
}

func (s *PostgresStore) selectStudents(ctx context.Context) ([]models.Student, error) {
	const full = `SELECT id, name, phone, batch, join_date, status, monthly_fee, teacher, created_at
		FROM students ORDER BY created_at, id`

	var rows []studentRow
	err := s.db.SelectContext(ctx, &rows, full)
	if isUndefinedColumn(err) {
		// older schema without the teacher column
		const reduced = `SELECT id, name, phone, batch, join_date, status, monthly_fee, created_at
			FROM students ORDER BY created_at, id`
		err = s.db.SelectContext(ctx, &rows, reduced)
	}
	if isUndefinedTable(err) {
		return []models.Student{}, nil
	}
	if err != nil {
		return nil, classify(err, "select students")
	}

	students := make([]models.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, s.mapStudent(r))
	}
	return students, nil
}

func (s *PostgresStore) selectTransactions(ctx context.Context, meta map[string]models.Student) ([]models.FinanceTransaction, error) {
	const full = `SELECT id, type, category, amount, date, description, student_id, student_name, status, note, created_at
		FROM finance_transactions ORDER BY date, created_at, id`

	var rows []transactionRow
	err := s.db.SelectContext(ctx, &rows, full)
	backfillNames := false
	if isUndefinedColumn(err) {
		const reduced = `SELECT id, type, category, amount, date, description, student_id, status, note, created_at
			FROM finance_transactions ORDER BY date, created_at, id`
		err = s.db.SelectContext(ctx, &rows, reduced)
		backfillNames = true
	}
	if isUndefinedTable(err) {
		return []models.FinanceTransaction{}, nil
	}
	if err != nil {
		return nil, classify(err, "select transactions")
	}

	transactions := make([]models.FinanceTransaction, 0, len(rows))
	for _, r := range rows {
		tx := mapTransaction(r)
		if backfillNames && tx.StudentID != "" {
			if st, ok := meta[tx.StudentID]; ok {
				tx.StudentName = st.Name
			}
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (s *PostgresStore) selectAttendance(ctx context.Context, meta map[string]models.Student) ([]models.AttendanceRecord, error) {
	selects := []string{
		`SELECT id, student_id, student_name, batch, teacher, attendance_date, status, note FROM attendance_records ORDER BY attendance_date, id`,
		`SELECT id, student_id, student_name, batch, attendance_date, status, note FROM attendance_records ORDER BY attendance_date, id`,
		`SELECT id, student_id, attendance_date, status FROM attendance_records ORDER BY attendance_date, id`,
	}

	var rows []attendanceRow
	var err error
	for _, q := range selects {
		rows = rows[:0]
		err = s.db.SelectContext(ctx, &rows, q)
		if !isUndefinedColumn(err) {
			break
		}
	}
	if isUndefinedTable(err) {
		return []models.AttendanceRecord{}, nil
	}
	if err != nil {
		return nil, classify(err, "select attendance")
	}

	records := make([]models.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		record := models.AttendanceRecord{
			ID:          r.ID,
			StudentID:   r.StudentID.String,
			StudentName: r.StudentName.String,
			Batch:       r.Batch.String,
			Teacher:     r.Teacher.String,
			Status:      r.Status.String,
			Note:        r.Note.String,
		}
		if r.Date.Valid {
			record.Date = r.Date.Time
		}
		// backfill denormalized fields dropped by older schemas
		if st, ok := meta[record.StudentID]; ok {
			if record.StudentName == "" {
				record.StudentName = st.Name
			}
			if record.Batch == "" {
				record.Batch = st.Batch
			}
			if record.Teacher == "" {
				record.Teacher = st.Teacher
			}
		} else if record.StudentName == "" {
			record.StudentName = "Unknown Student"
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *PostgresStore) selectProfile(ctx context.Context) (models.BusinessProfile, error) {
	const q = `SELECT name, owner, phone, email, address FROM business_profile LIMIT 1`

	var row struct {
		Name    sql.NullString `db:"name"`
		Owner   sql.NullString `db:"owner"`
		Phone   sql.NullString `db:"phone"`
		Email   sql.NullString `db:"email"`
		Address sql.NullString `db:"address"`
	}
	err := s.db.GetContext(ctx, &row, q)
	if isUndefinedTable(err) || errors.Is(err, sql.ErrNoRows) {
		return demoProfile(), nil
	}
	if err != nil {
		return models.BusinessProfile{}, classify(err, "select profile")
	}

	return models.BusinessProfile{
		Name:    row.Name.String,
		Owner:   row.Owner.String,
		Phone:   row.Phone.String,
		Email:   row.Email.String,
		Address: row.Address.String,
	}, nil
}

// --- students ---

func (s *PostgresStore) AddStudent(ctx context.Context, input models.StudentInput) (*models.Student, error) {
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

	const q = `INSERT INTO students (id, name, phone, batch, join_date, status, monthly_fee, teacher, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.ExecContext(ctx, q,
		student.ID, student.Name, student.Phone, student.Batch,
		nullDate(student.JoinDate), student.Status, student.MonthlyFee, student.Teacher, student.CreatedAt,
	)
	if err != nil {
		return nil, classify(err, "insert student")
	}
	return &student, nil
}

func (s *PostgresStore) UpdateStudent(ctx context.Context, id string, input models.StudentInput) (*models.Student, error) {
	const q = `UPDATE students
		SET name = $2, phone = $3, batch = $4, join_date = $5, status = $6, monthly_fee = $7, teacher = $8
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q,
		id, strings.TrimSpace(input.Name), strings.TrimSpace(input.Phone), input.Batch,
		nullDate(ParseDate(input.JoinDate)), input.Status, input.MonthlyFee, strings.TrimSpace(input.Teacher),
	)
	if err != nil {
		return nil, classify(err, "update student")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &models.Student{
		ID:         id,
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Batch:      input.Batch,
		JoinDate:   ParseDate(input.JoinDate),
		Status:     input.Status,
		MonthlyFee: input.MonthlyFee,
		Teacher:    strings.TrimSpace(input.Teacher),
	}, nil
}

func (s *PostgresStore) DeleteStudent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err, "begin delete student")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance_records WHERE student_id = $1`, id); err != nil && !isUndefinedTable(err) {
		return classify(err, "delete attendance for student")
	}
	if _, err := tx.ExecContext(ctx, `UPDATE finance_transactions SET student_id = NULL WHERE student_id = $1`, id); err != nil && !isUndefinedTable(err) {
		return classify(err, "unlink transactions for student")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete student")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "commit delete student")
	}
	return nil
}

// --- transactions ---

func (s *PostgresStore) AddTransaction(ctx context.Context, input models.TransactionInput) (*models.FinanceTransaction, error) {
	entry := models.FinanceTransaction{
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

	const q = `INSERT INTO finance_transactions (id, type, category, amount, date, description, student_id, student_name, status, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.db.ExecContext(ctx, q,
		entry.ID, entry.Type, entry.Category, entry.Amount, nullDate(entry.Date),
		entry.Description, nullString(entry.StudentID), entry.StudentName, entry.Status, entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return nil, classify(err, "insert transaction")
	}
	return &entry, nil
}

func (s *PostgresStore) UpdateTransaction(ctx context.Context, id string, input models.TransactionInput) (*models.FinanceTransaction, error) {
	const q = `UPDATE finance_transactions
		SET type = $2, category = $3, amount = $4, date = $5, description = $6,
		    student_id = $7, student_name = $8, status = $9, note = $10
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q,
		id, input.Type, input.Category, input.Amount, nullDate(ParseDate(input.Date)),
		input.Description, nullString(input.StudentID), input.StudentName, input.Status, input.Note,
	)
	if err != nil {
		return nil, classify(err, "update transaction")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &models.FinanceTransaction{
		ID:          id,
		Type:        input.Type,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        ParseDate(input.Date),
		Description: input.Description,
		StudentID:   input.StudentID,
		StudentName: input.StudentName,
		Status:      input.Status,
		Note:        input.Note,
	}, nil
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM finance_transactions WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete transaction")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ToggleTransactionStatus(ctx context.Context, id string) (*models.FinanceTransaction, error) {
	const q = `UPDATE finance_transactions
		SET status = CASE WHEN status = 'paid' THEN 'pending' ELSE 'paid' END
		WHERE id = $1
		RETURNING id, type, category, amount, date, description, student_id, student_name, status, note, created_at`

	var row transactionRow
	err := s.db.GetContext(ctx, &row, q, id)
	if err != nil {
		return nil, classify(err, "toggle transaction status")
	}
	tx := mapTransaction(row)
	return &tx, nil
}

// --- attendance ---

// attendance columns beyond the upsert key, in the order they are dropped
// when an older schema rejects them.
var optionalAttendanceColumns = []string{"teacher", "student_name", "batch", "note"}

func (s *PostgresStore) SaveAttendance(ctx context.Context, date time.Time, entries []models.AttendanceDraft) ([]models.AttendanceRecord, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	meta, err := s.studentMeta(ctx, entries)
	if err != nil {
		return nil, err
	}

	dropped := 0
	for _, entry := range entries {
		for {
			err := s.upsertAttendance(ctx, day, entry, meta, optionalAttendanceColumns[dropped:])
			if err == nil {
				break
			}
			if isUndefinedColumn(err) && dropped < len(optionalAttendanceColumns) {
				dropped++
				continue
			}
			return nil, classify(err, "save attendance")
		}
	}

	records, err := s.selectAttendance(ctx, meta)
	if err != nil {
		return nil, err
	}

	saved := make([]models.AttendanceRecord, 0, len(entries))
	for _, r := range records {
		if r.Date.Equal(day) {
			saved = append(saved, r)
		}
	}
	return saved, nil
}

func (s *PostgresStore) upsertAttendance(ctx context.Context, day time.Time, entry models.AttendanceDraft, meta map[string]models.Student, optional []string) error {
	st, known := meta[entry.StudentID]

	cols := []string{"id", "student_id", "attendance_date", "status"}
	args := []interface{}{uuid.NewString(), entry.StudentID, day, entry.Status}

	for _, col := range optional {
		switch col {
		case "teacher":
			cols = append(cols, col)
			args = append(args, st.Teacher)
		case "student_name":
			name := st.Name
			if !known {
				name = "Unknown Student"
			}
			cols = append(cols, col)
			args = append(args, name)
		case "batch":
			cols = append(cols, col)
			args = append(args, st.Batch)
		case "note":
			cols = append(cols, col)
			args = append(args, entry.Note)
		}
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	set := "status = EXCLUDED.status"
	for _, col := range optional {
		if col == "note" {
			set += ", note = EXCLUDED.note"
		}
	}

	q := fmt.Sprintf(
		`INSERT INTO attendance_records (%s) VALUES (%s)
		 ON CONFLICT (student_id, attendance_date) DO UPDATE SET %s`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "), set,
	)

	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *PostgresStore) studentMeta(ctx context.Context, entries []models.AttendanceDraft) (map[string]models.Student, error) {
	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.StudentID]; ok {
			continue
		}
		seen[e.StudentID] = struct{}{}
		ids = append(ids, e.StudentID)
	}
	if len(ids) == 0 {
		return map[string]models.Student{}, nil
	}

	const full = `SELECT id, name, phone, batch, join_date, status, monthly_fee, teacher, created_at
		FROM students WHERE id = ANY($1)`

	var rows []studentRow
	err := s.db.SelectContext(ctx, &rows, full, pq.Array(ids))
	if isUndefinedColumn(err) {
		const reduced = `SELECT id, name, phone, batch, join_date, status, monthly_fee, created_at
			FROM students WHERE id = ANY($1)`
		err = s.db.SelectContext(ctx, &rows, reduced, pq.Array(ids))
	}
	if isUndefinedTable(err) {
		return map[string]models.Student{}, nil
	}
	if err != nil {
		return nil, classify(err, "select students for attendance")
	}

	meta := make(map[string]models.Student, len(rows))
	for _, r := range rows {
		meta[r.ID] = s.mapStudent(r)
	}
	return meta, nil
}

// --- profile / reset ---

func (s *PostgresStore) UpdateProfile(ctx context.Context, input models.ProfileInput) (*models.BusinessProfile, error) {
	profile := models.BusinessProfile{
		Name:    strings.TrimSpace(input.Name),
		Owner:   strings.TrimSpace(input.Owner),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}

	const q = `INSERT INTO business_profile (id, name, owner, phone, email, address)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = $1, owner = $2, phone = $3, email = $4, address = $5`
	if _, err := s.db.ExecContext(ctx, q, profile.Name, profile.Owner, profile.Phone, profile.Email, profile.Address); err != nil {
		return nil, classify(err, "update profile")
	}
	return &profile, nil
}

// ResetAllData wipes students, transactions and attendance and reseeds the
// demo dataset with fresh IDs. Transactions that referenced a demo student
// are re-linked through the student's name+phone key since IDs change on
// every reset. User accounts are left untouched.
func (s *PostgresStore) ResetAllData(ctx context.Context) error {
	now := time.Now().UTC()

	students := demoStudents(now)
	transactions := demoTransactions(now)
	attendance := demoAttendance(now)
	profile := demoProfile()

	oldIDs := make(map[string]models.Student, len(students))
	byKey := make(map[string]string, len(students))
	for i := range students {
		oldIDs[students[i].ID] = students[i]
		newID := uuid.NewString()
		byKey[LinkKey(students[i].Name, students[i].Phone)] = newID
		students[i].ID = newID
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err, "begin reset")
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"attendance_records", "finance_transactions", "students"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil && !isUndefinedTable(err) {
			return classify(err, "clear "+table)
		}
	}

	for _, st := range students {
		const q = `INSERT INTO students (id, name, phone, batch, join_date, status, monthly_fee, teacher, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := tx.ExecContext(ctx, q, st.ID, st.Name, st.Phone, st.Batch, nullDate(st.JoinDate), st.Status, st.MonthlyFee, st.Teacher, now); err != nil {
			return classify(err, "seed students")
		}
	}

	for _, entry := range transactions {
		studentID := ""
		if entry.StudentID != "" {
			if st, ok := oldIDs[entry.StudentID]; ok {
				studentID = byKey[LinkKey(st.Name, st.Phone)]
			}
		}
		const q = `INSERT INTO finance_transactions (id, type, category, amount, date, description, student_id, student_name, status, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		if _, err := tx.ExecContext(ctx, q,
			uuid.NewString(), entry.Type, entry.Category, entry.Amount, nullDate(entry.Date),
			entry.Description, nullString(studentID), entry.StudentName, entry.Status, entry.Note, now,
		); err != nil {
			return classify(err, "seed transactions")
		}
	}

	for _, record := range attendance {
		studentID := ""
		if st, ok := oldIDs[record.StudentID]; ok {
			studentID = byKey[LinkKey(st.Name, st.Phone)]
		}
		if studentID == "" {
			continue
		}
		const q = `INSERT INTO attendance_records (id, student_id, student_name, batch, teacher, attendance_date, status, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.ExecContext(ctx, q,
			uuid.NewString(), studentID, record.StudentName, record.Batch, record.Teacher, record.Date, record.Status, record.Note,
		); err != nil {
			return classify(err, "seed attendance")
		}
	}

	const profileQ = `INSERT INTO business_profile (id, name, owner, phone, email, address)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = $1, owner = $2, phone = $3, email = $4, address = $5`
	if _, err := tx.ExecContext(ctx, profileQ, profile.Name, profile.Owner, profile.Phone, profile.Email, profile.Address); err != nil {
		return classify(err, "seed profile")
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "commit reset")
	}
	return nil
}

// --- user access ---

type userAccessRow struct {
	UserID           string         `db:"user_id"`
	Email            sql.NullString `db:"email"`
	PasswordHash     sql.NullString `db:"password_hash"`
	Role             sql.NullString `db:"role"`
	AssignedTeachers pq.StringArray `db:"assigned_teachers"`
	CreatedAt        sql.NullTime   `db:"created_at"`
}

func mapUserAccess(r userAccessRow) models.UserAccess {
	access := models.UserAccess{
		UserID:           r.UserID,
		Email:            r.Email.String,
		Role:             models.AppRole(r.Role.String),
		AssignedTeachers: []string(r.AssignedTeachers),
	}
	if r.CreatedAt.Valid {
		access.CreatedAt = r.CreatedAt.Time
	}
	return access
}

func (s *PostgresStore) ListUserAccess(ctx context.Context) ([]models.UserAccess, error) {
	const full = `SELECT user_id, email, role, assigned_teachers, created_at FROM user_access ORDER BY created_at, user_id`

	var rows []userAccessRow
	err := s.db.SelectContext(ctx, &rows, full)
	if isUndefinedColumn(err) {
		// older schema without assigned_teachers
		const reduced = `SELECT user_id, email, role, created_at FROM user_access ORDER BY created_at, user_id`
		err = s.db.SelectContext(ctx, &rows, reduced)
	}
	if isUndefinedTable(err) {
		return []models.UserAccess{}, nil
	}
	if err != nil {
		return nil, classify(err, "list user access")
	}

	list := make([]models.UserAccess, 0, len(rows))
	for _, r := range rows {
		list = append(list, mapUserAccess(r))
	}
	return list, nil
}

func (s *PostgresStore) CreateUserAccess(ctx context.Context, input models.CreateUserInput) (*models.UserAccess, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "hash password")
	}

	access := models.UserAccess{
		UserID:           uuid.NewString(),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		Role:             models.AppRole(input.Role),
		AssignedTeachers: append([]string(nil), input.AssignedTeachers...),
		CreatedAt:        time.Now().UTC(),
	}

	const full = `INSERT INTO user_access (user_id, email, password_hash, role, assigned_teachers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.db.ExecContext(ctx, full,
		access.UserID, access.Email, string(hash), string(access.Role), pq.StringArray(access.AssignedTeachers), access.CreatedAt,
	)
	if isUndefinedColumn(err) {
		const reduced = `INSERT INTO user_access (user_id, email, password_hash, role, created_at)
			VALUES ($1, $2, $3, $4, $5)`
		_, err = s.db.ExecContext(ctx, reduced, access.UserID, access.Email, string(hash), string(access.Role), access.CreatedAt)
	}
	if isUniqueViolation(err) {
		return nil, apperrors.Clone(apperrors.ErrConflict, "a user with this email already exists")
	}
	if err != nil {
		return nil, classify(err, "create user access")
	}
	return &access, nil
}

func (s *PostgresStore) UpdateUserAccessRole(ctx context.Context, userID string, input models.UpdateRoleInput) (*models.UserAccess, error) {
	const full = `UPDATE user_access SET role = $2, assigned_teachers = $3 WHERE user_id = $1
		RETURNING user_id, email, role, assigned_teachers, created_at`

	var row userAccessRow
	err := s.db.GetContext(ctx, &row, full, userID, input.Role, pq.StringArray(input.AssignedTeachers))
	if isUndefinedColumn(err) {
		const reduced = `UPDATE user_access SET role = $2 WHERE user_id = $1
			RETURNING user_id, email, role, created_at`
		err = s.db.GetContext(ctx, &row, reduced, userID, input.Role)
	}
	if err != nil {
		return nil, classify(err, "update user access role")
	}

	access := mapUserAccess(row)
	return &access, nil
}

func (s *PostgresStore) DeleteUserAccess(ctx context.Context, userID, mode string) error {
	if mode == models.DeleteModeUser {
		res, err := s.db.ExecContext(ctx, `DELETE FROM user_access WHERE user_id = $1`, userID)
		if err != nil {
			return classify(err, "delete user")
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx, `UPDATE user_access SET role = NULL, assigned_teachers = NULL WHERE user_id = $1`, userID)
	if isUndefinedColumn(err) {
		res, err = s.db.ExecContext(ctx, `UPDATE user_access SET role = NULL WHERE user_id = $1`, userID)
	}
	if err != nil {
		return classify(err, "revoke user access")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AccountByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	const full = `SELECT user_id, email, password_hash, role, assigned_teachers, created_at
		FROM user_access WHERE lower(email) = lower($1)`

	var row userAccessRow
	err := s.db.GetContext(ctx, &row, full, strings.TrimSpace(email))
	if isUndefinedColumn(err) {
		const reduced = `SELECT user_id, email, password_hash, role, created_at
			FROM user_access WHERE lower(email) = lower($1)`
		err = s.db.GetContext(ctx, &row, reduced, strings.TrimSpace(email))
	}
	if err != nil {
		return nil, classify(err, "account by email")
	}

	account := models.UserAccount{
		UserID:           row.UserID,
		Email:            row.Email.String,
		PasswordHash:     row.PasswordHash.String,
		Role:             models.AppRole(row.Role.String),
		AssignedTeachers: []string(row.AssignedTeachers),
	}
	if row.CreatedAt.Valid {
		account.CreatedAt = row.CreatedAt.Time
	}
	return &account, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify(err, "ping")
	}
	return nil
}

// --- helpers ---

func nullDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullString(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
