package domain

import "context"

type EmployeeRepo interface {
	Create(ctx context.Context, name, department string, salary float64) (int64, error)
	ListAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id int64, name, department string, salary float64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Employee is one row of the employees table. Department is "" when absent.
type Employee struct {
	ID         int64
	Name       string
	Department string
	Salary     float64
}
