package sqlstore

import (
	"context"
	"database/sql"

	"employee-app/internal/domain"
	"employee-app/internal/logger"
)

const (
	insertEmployee = `INSERT INTO employees (name, department, salary) VALUES (?, ?, ?) RETURNING id`
	selectAll      = `SELECT id, name, department, salary FROM employees ORDER BY id ASC`
	updateEmployee = `UPDATE employees SET name = ?, department = ?, salary = ? WHERE id = ?`
	deleteEmployee = `DELETE FROM employees WHERE id = ?`
)

type SqlEmployeeRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewSqlEmployeeRepo(db *sql.DB, dialect Dialect) *SqlEmployeeRepo {
	return &SqlEmployeeRepo{db: db, dialect: dialect}
}

// withConn runs fn on a connection taken from the pool and always hands it
// back. Any error comes out as a *domain.StoreError.
func (r *SqlEmployeeRepo) withConn(ctx context.Context, op string, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return domain.NewStoreError(op, err)
	}
	defer conn.Close()

	if err := fn(conn); err != nil {
		logger.ErrorLog(ctx, err, "%s failed", op)
		return domain.NewStoreError(op, err)
	}
	return nil
}

func (r *SqlEmployeeRepo) Create(ctx context.Context, name, department string, salary float64) (int64, error) {
	var id int64
	err := r.withConn(ctx, "create employee", func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, r.dialect.Rebind(insertEmployee), name, department, salary).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SqlEmployeeRepo) ListAll(ctx context.Context) ([]domain.Employee, error) {
	employees := make([]domain.Employee, 0)
	err := r.withConn(ctx, "list employees", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectAll)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e domain.Employee
			var department sql.NullString
			if err := rows.Scan(&e.ID, &e.Name, &department, &e.Salary); err != nil {
				return err
			}
			e.Department = department.String
			employees = append(employees, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *SqlEmployeeRepo) Update(ctx context.Context, id int64, name, department string, salary float64) (bool, error) {
	var matched bool
	err := r.withConn(ctx, "update employee", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, r.dialect.Rebind(updateEmployee), name, department, salary, id)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		matched = rows > 0
		return nil
	})
	return matched, err
}

func (r *SqlEmployeeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var matched bool
	err := r.withConn(ctx, "delete employee", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, r.dialect.Rebind(deleteEmployee), id)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		matched = rows > 0
		return nil
	})
	return matched, err
}
