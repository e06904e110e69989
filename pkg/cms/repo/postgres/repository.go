package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nappsng/cms/pkg/cms"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements cms.Repository using PostgreSQL. The schema it
// expects is shipped in migrations/schema.sql.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// mapError translates driver errors into the domain taxonomy. Uniqueness
// violations are resolved by constraint name so a racing create loses with a
// conflict error, never a lost update.
func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "enrollment") {
				return cms.ErrDuplicateEnrollment
			}
			if strings.Contains(pgErr.ConstraintName, "content_blocks_key") {
				return cms.ErrDuplicateKey
			}
			return fmt.Errorf("duplicate entry in %s: %w", op, err)
		case "23502": // not_null_violation
			return &cms.ValidationError{Field: pgErr.ColumnName, Reason: "required field is missing"}
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required: %w", err)
		}
	}
	return fmt.Errorf("database error in %s: %w", op, err)
}

// jsonArg marshals maps and slices for jsonb columns; nil stays NULL.
func jsonArg(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	return b, nil
}

func unmarshalInto(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// Content block operations

func (r *Repository) CreateContentBlock(ctx context.Context, block *cms.ContentBlock) error {
	body, err := jsonArg(block.Body)
	if err != nil {
		return err
	}
	media, err := jsonArg(block.Media)
	if err != nil {
		return err
	}
	meta, err := jsonArg(block.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO content_blocks (
			id, key, kind, title, subtitle, description, body, media,
			active, sort_order, metadata, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.db.Exec(ctx, query,
		block.ID, block.Key, block.Kind, block.Title, block.Subtitle,
		block.Description, body, media, block.Active, block.SortOrder,
		meta, block.CreatedAt, block.UpdatedAt)
	if err != nil {
		return mapError("create content block", err)
	}

	return nil
}

const contentBlockCols = `
	id, key, kind, title, subtitle, description, body, media,
	active, sort_order, metadata, created_at, updated_at
`

func scanContentBlock(row pgx.Row) (*cms.ContentBlock, error) {
	var block cms.ContentBlock
	var body, media, meta []byte

	err := row.Scan(
		&block.ID, &block.Key, &block.Kind, &block.Title, &block.Subtitle,
		&block.Description, &body, &media, &block.Active, &block.SortOrder,
		&meta, &block.CreatedAt, &block.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalInto(body, &block.Body); err != nil {
		return nil, err
	}
	if err := unmarshalInto(media, &block.Media); err != nil {
		return nil, err
	}
	if err := unmarshalInto(meta, &block.Metadata); err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *Repository) GetContentBlock(ctx context.Context, id uuid.UUID) (*cms.ContentBlock, error) {
	query := `SELECT` + contentBlockCols + `FROM content_blocks WHERE id = $1`

	block, err := scanContentBlock(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrContentBlockNotFound
		}
		return nil, mapError("get content block", err)
	}
	return block, nil
}

func (r *Repository) GetContentBlockByKey(ctx context.Context, key string) (*cms.ContentBlock, error) {
	query := `SELECT` + contentBlockCols + `FROM content_blocks WHERE key = $1`

	block, err := scanContentBlock(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrContentBlockNotFound
		}
		return nil, mapError("get content block by key", err)
	}
	return block, nil
}

func (r *Repository) UpdateContentBlock(ctx context.Context, block *cms.ContentBlock) error {
	body, err := jsonArg(block.Body)
	if err != nil {
		return err
	}
	media, err := jsonArg(block.Media)
	if err != nil {
		return err
	}
	meta, err := jsonArg(block.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE content_blocks SET
			key = $2, kind = $3, title = $4, subtitle = $5, description = $6,
			body = $7, media = $8, active = $9, sort_order = $10,
			metadata = $11, updated_at = $12
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		block.ID, block.Key, block.Kind, block.Title, block.Subtitle,
		block.Description, body, media, block.Active, block.SortOrder,
		meta, block.UpdatedAt)
	if err != nil {
		return mapError("update content block", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrContentBlockNotFound
	}
	return nil
}

func (r *Repository) DeleteContentBlock(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_blocks WHERE id = $1`, id)
	if err != nil {
		return mapError("delete content block", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrContentBlockNotFound
	}
	return nil
}

func (r *Repository) ListContentBlocks(ctx context.Context, filter cms.ContentBlockFilter, limit, offset int) ([]*cms.ContentBlock, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("active = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM content_blocks WHERE ` + cond
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count content blocks", err)
	}

	query := `SELECT` + contentBlockCols + `FROM content_blocks WHERE ` + cond +
		fmt.Sprintf(` ORDER BY sort_order ASC, created_at ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError("list content blocks", err)
	}
	defer rows.Close()

	var blocks []*cms.ContentBlock
	for rows.Next() {
		block, err := scanContentBlock(rows)
		if err != nil {
			return nil, 0, mapError("list content blocks", err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list content blocks", err)
	}

	return blocks, total, nil
}

// Team member operations

func (r *Repository) CreateTeamMember(ctx context.Context, member *cms.TeamMember) error {
	photo, err := jsonArg(member.Photo)
	if err != nil {
		return err
	}
	achievements, err := jsonArg(member.Achievements)
	if err != nil {
		return err
	}
	qualifications, err := jsonArg(member.Qualifications)
	if err != nil {
		return err
	}
	meta, err := jsonArg(member.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO team_members (
			id, first_name, last_name, category, role, email, phone, bio,
			photo, achievements, qualifications, active, featured,
			sort_order, metadata, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = r.db.Exec(ctx, query,
		member.ID, member.FirstName, member.LastName, member.Category,
		member.Role, member.Email, member.Phone, member.Bio, photo,
		achievements, qualifications, member.Active, member.Featured,
		member.SortOrder, meta, member.CreatedAt, member.UpdatedAt)
	if err != nil {
		return mapError("create team member", err)
	}

	return nil
}

const teamMemberCols = `
	id, first_name, last_name, category, role, email, phone, bio,
	photo, achievements, qualifications, active, featured,
	sort_order, metadata, created_at, updated_at
`

func scanTeamMember(row pgx.Row) (*cms.TeamMember, error) {
	var member cms.TeamMember
	var photo, achievements, qualifications, meta []byte

	err := row.Scan(
		&member.ID, &member.FirstName, &member.LastName, &member.Category,
		&member.Role, &member.Email, &member.Phone, &member.Bio, &photo,
		&achievements, &qualifications, &member.Active, &member.Featured,
		&member.SortOrder, &meta, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalInto(photo, &member.Photo); err != nil {
		return nil, err
	}
	if err := unmarshalInto(achievements, &member.Achievements); err != nil {
		return nil, err
	}
	if err := unmarshalInto(qualifications, &member.Qualifications); err != nil {
		return nil, err
	}
	if err := unmarshalInto(meta, &member.Metadata); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *Repository) GetTeamMember(ctx context.Context, id uuid.UUID) (*cms.TeamMember, error) {
	query := `SELECT` + teamMemberCols + `FROM team_members WHERE id = $1`

	member, err := scanTeamMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrTeamMemberNotFound
		}
		return nil, mapError("get team member", err)
	}
	return member, nil
}

func (r *Repository) UpdateTeamMember(ctx context.Context, member *cms.TeamMember) error {
	photo, err := jsonArg(member.Photo)
	if err != nil {
		return err
	}
	achievements, err := jsonArg(member.Achievements)
	if err != nil {
		return err
	}
	qualifications, err := jsonArg(member.Qualifications)
	if err != nil {
		return err
	}
	meta, err := jsonArg(member.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE team_members SET
			first_name = $2, last_name = $3, category = $4, role = $5,
			email = $6, phone = $7, bio = $8, photo = $9, achievements = $10,
			qualifications = $11, active = $12, featured = $13,
			sort_order = $14, metadata = $15, updated_at = $16
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		member.ID, member.FirstName, member.LastName, member.Category,
		member.Role, member.Email, member.Phone, member.Bio, photo,
		achievements, qualifications, member.Active, member.Featured,
		member.SortOrder, meta, member.UpdatedAt)
	if err != nil {
		return mapError("update team member", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrTeamMemberNotFound
	}
	return nil
}

func (r *Repository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return mapError("delete team member", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrTeamMemberNotFound
	}
	return nil
}

func (r *Repository) ListTeamMembers(ctx context.Context, filter cms.TeamMemberFilter, limit, offset int) ([]*cms.TeamMember, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("active = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM team_members WHERE ` + cond
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count team members", err)
	}

	query := `SELECT` + teamMemberCols + `FROM team_members WHERE ` + cond +
		fmt.Sprintf(` ORDER BY sort_order ASC, created_at ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError("list team members", err)
	}
	defer rows.Close()

	var members []*cms.TeamMember
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			return nil, 0, mapError("list team members", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list team members", err)
	}

	return members, total, nil
}

// Enrollment operations

func (r *Repository) CreateEnrollment(ctx context.Context, record *cms.EnrollmentRecord) error {
	counts, err := jsonArg(record.Counts)
	if err != nil {
		return err
	}
	meta, err := jsonArg(record.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO enrollment_records (
			id, school_id, academic_year, counts, legacy_total,
			metadata, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		record.ID, record.SchoolID, record.AcademicYear, counts,
		record.LegacyTotal, meta, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return mapError("create enrollment", err)
	}

	return nil
}

const enrollmentCols = `
	id, school_id, academic_year, counts, legacy_total,
	metadata, created_at, updated_at
`

func scanEnrollment(row pgx.Row) (*cms.EnrollmentRecord, error) {
	var record cms.EnrollmentRecord
	var counts, meta []byte

	err := row.Scan(
		&record.ID, &record.SchoolID, &record.AcademicYear, &counts,
		&record.LegacyTotal, &meta, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalInto(counts, &record.Counts); err != nil {
		return nil, err
	}
	if err := unmarshalInto(meta, &record.Metadata); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) GetEnrollment(ctx context.Context, id uuid.UUID) (*cms.EnrollmentRecord, error) {
	query := `SELECT` + enrollmentCols + `FROM enrollment_records WHERE id = $1`

	record, err := scanEnrollment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrEnrollmentNotFound
		}
		return nil, mapError("get enrollment", err)
	}
	return record, nil
}

func (r *Repository) GetEnrollmentBySchoolYear(ctx context.Context, schoolID uuid.UUID, academicYear string) (*cms.EnrollmentRecord, error) {
	query := `SELECT` + enrollmentCols + `FROM enrollment_records WHERE school_id = $1 AND academic_year = $2`

	record, err := scanEnrollment(r.db.QueryRow(ctx, query, schoolID, academicYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrEnrollmentNotFound
		}
		return nil, mapError("get enrollment by school/year", err)
	}
	return record, nil
}

func (r *Repository) UpdateEnrollment(ctx context.Context, record *cms.EnrollmentRecord) error {
	counts, err := jsonArg(record.Counts)
	if err != nil {
		return err
	}
	meta, err := jsonArg(record.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE enrollment_records SET
			school_id = $2, academic_year = $3, counts = $4,
			legacy_total = $5, metadata = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		record.ID, record.SchoolID, record.AcademicYear, counts,
		record.LegacyTotal, meta, record.UpdatedAt)
	if err != nil {
		return mapError("update enrollment", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrEnrollmentNotFound
	}
	return nil
}

func (r *Repository) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enrollment_records WHERE id = $1`, id)
	if err != nil {
		return mapError("delete enrollment", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrEnrollmentNotFound
	}
	return nil
}

func (r *Repository) ListEnrollments(ctx context.Context, filter cms.EnrollmentFilter, limit, offset int) ([]*cms.EnrollmentRecord, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if filter.SchoolID != nil {
		args = append(args, *filter.SchoolID)
		where = append(where, fmt.Sprintf("school_id = $%d", len(args)))
	}
	if filter.AcademicYear != nil {
		args = append(args, *filter.AcademicYear)
		where = append(where, fmt.Sprintf("academic_year = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM enrollment_records WHERE ` + cond
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count enrollments", err)
	}

	query := `SELECT` + enrollmentCols + `FROM enrollment_records WHERE ` + cond +
		fmt.Sprintf(` ORDER BY academic_year ASC, created_at ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError("list enrollments", err)
	}
	defer rows.Close()

	var records []*cms.EnrollmentRecord
	for rows.Next() {
		record, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, mapError("list enrollments", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list enrollments", err)
	}

	return records, total, nil
}
