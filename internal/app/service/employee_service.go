package service

import (
	"context"
	"math"
	"strings"

	"employee-app/internal/domain"
	"employee-app/internal/logger"
)

type EmployeeService struct {
	Repo domain.EmployeeRepo
}

func NewEmployeeService(repo domain.EmployeeRepo) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

func (s *EmployeeService) Create(ctx context.Context, name, department string, salary float64) (int64, error) {
	name, department = strings.TrimSpace(name), strings.TrimSpace(department)
	if err := validate("create employee", name, salary); err != nil {
		return 0, err
	}
	id, err := s.Repo.Create(ctx, name, department, salary)
	if err != nil {
		return 0, err
	}
	logger.InfoLog(ctx, "employee %d created", id)
	return id, nil
}

func (s *EmployeeService) ListAll(ctx context.Context) ([]domain.Employee, error) {
	return s.Repo.ListAll(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, id int64, name, department string, salary float64) (bool, error) {
	name, department = strings.TrimSpace(name), strings.TrimSpace(department)
	if err := validate("update employee", name, salary); err != nil {
		return false, err
	}
	ok, err := s.Repo.Update(ctx, id, name, department, salary)
	if err != nil {
		return false, err
	}
	if ok {
		logger.InfoLog(ctx, "employee %d updated", id)
	}
	return ok, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		logger.InfoLog(ctx, "employee %d deleted", id)
	}
	return ok, nil
}

func validate(op, name string, salary float64) error {
	if name == "" {
		return domain.NewStoreError(op, domain.ErrEmptyName)
	}
	if math.IsNaN(salary) || math.IsInf(salary, 0) {
		return domain.NewStoreError(op, domain.ErrInvalidSalary)
	}
	return nil
}
