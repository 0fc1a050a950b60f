package domain

import "context"

// EmployeeService is what the delivery layers talk to. Every failure it
// returns is a *StoreError.
type EmployeeService interface {
	Create(ctx context.Context, name, department string, salary float64) (int64, error)
	ListAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id int64, name, department string, salary float64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
