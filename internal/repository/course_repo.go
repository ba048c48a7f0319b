package repository

import (
	"context"

	"github.com/mkhosravi/CourseHubBack/internal/models"
)

type CreateCourseInput struct {
	Title        string
	Description  string
	InstructorID int64
	Price        float64
	Category     string
}

type CourseRepository struct {
	db DBTX
}

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(
	ctx context.Context,
	input CreateCourseInput,
) (*models.Course, error) {
	query := `
		INSERT INTO courses (title, description, instructor_id, price, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, instructor_id, price, category, created_at, updated_at
	`

	var course models.Course
	err := r.db.QueryRow(
		ctx,
		query,
		input.Title,
		input.Description,
		input.InstructorID,
		input.Price,
		input.Category,
	).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.InstructorID,
		&course.Price,
		&course.Category,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, courseID int64) (*models.Course, error) {
	query := `
		SELECT id, title, description, instructor_id, price, category, created_at, updated_at
		FROM courses
		WHERE id = $1
	`
	var course models.Course
	err := r.db.QueryRow(ctx, query, courseID).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.InstructorID,
		&course.Price,
		&course.Category,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, title, description, instructor_id, price, category, created_at, updated_at
		FROM courses
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.InstructorID,
			&course.Price,
			&course.Category,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
