package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"employee-app/internal/domain"
	"employee-app/internal/logger"
)

const (
	title        = "=== Employee Database App ==="
	headerFormat = "%-5s %-22s %-16s %-10s"
	rowFormat    = "%-5d %-22s %-16s %-10.2f"
	separator    = "-----------------------------------------------------------"
	noEmployees  = "(no employees yet)"
	notFound     = "❌ No employee with that ID."
)

// Controller drives the employee menu over a LineIO until the operator exits
// or the input ends.
type Controller struct {
	svc   domain.EmployeeService
	io    LineIO
	state State
	err   error
}

func NewController(svc domain.EmployeeService, lio LineIO) *Controller {
	return &Controller{svc: svc, io: lio, state: Idle}
}

func (c *Controller) State() State {
	return c.state
}

// Run returns nil after Exit or end of input, ctx.Err() on cancellation and
// the first I/O error otherwise. Store failures never end the loop.
func (c *Controller) Run(ctx context.Context) error {
	c.state = AwaitingChoice
	for {
		c.renderMenu()

		line, err := c.readLine(ctx)
		if err != nil {
			return c.finish(ctx, err)
		}

		cmd, ok := c.parseChoice(line)
		if !ok {
			if c.err != nil {
				return c.err
			}
			continue
		}

		if cmd == CmdExit {
			c.state = Exiting
			c.println("Bye!")
			return c.err
		}

		if err := c.dispatch(ctx, cmd); err != nil {
			if !domain.IsStoreError(err) {
				return c.finish(ctx, err)
			}
			logger.WarnLog(ctx, "operation failed: %v", err)
			c.println("DB Error: " + err.Error())
		}
		c.state = AwaitingChoice
		if c.err != nil {
			return c.err
		}
	}
}

func (c *Controller) finish(ctx context.Context, err error) error {
	c.state = Exiting
	if errors.Is(err, io.EOF) {
		logger.InfoLog(ctx, "input closed, leaving menu")
		return nil
	}
	return err
}

func (c *Controller) renderMenu() {
	c.println("")
	c.println(title)
	for _, item := range menuItems {
		c.println(fmt.Sprintf("%d) %s", item.cmd, item.label))
	}
	c.print("Choose option: ")
}

func (c *Controller) parseChoice(line string) (Command, bool) {
	n, err := strconv.Atoi(line)
	if err != nil {
		c.println("Enter a valid number.")
		return 0, false
	}
	if n < int(CmdAdd) || n > int(CmdExit) {
		c.println("Choose 1-5.")
		return 0, false
	}
	return Command(n), true
}

func (c *Controller) dispatch(ctx context.Context, cmd Command) error {
	switch cmd {
	case CmdAdd:
		return c.add(ctx)
	case CmdList:
		return c.list(ctx)
	case CmdUpdate:
		return c.update(ctx)
	case CmdDelete:
		return c.remove(ctx)
	}
	return nil
}

func (c *Controller) add(ctx context.Context) error {
	c.state = CollectingFields
	name, err := c.readName(ctx, "Name: ")
	if err != nil {
		return err
	}
	department, err := c.readText(ctx, "Department: ")
	if err != nil {
		return err
	}
	salary, err := c.readFloat(ctx, "Salary: ", "salary")
	if err != nil {
		return err
	}

	id, err := c.svc.Create(ctx, name, department, salary)
	if err != nil {
		return err
	}
	c.println(fmt.Sprintf("✅ Employee added (ID %d).", id))
	return nil
}

func (c *Controller) list(ctx context.Context) error {
	employees, err := c.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, line := range FormatTable(employees) {
		c.println(line)
	}
	return nil
}

func (c *Controller) update(ctx context.Context) error {
	c.state = CollectingFields
	id, err := c.readInt(ctx, "Employee ID to update: ", "employee ID")
	if err != nil {
		return err
	}
	name, err := c.readName(ctx, "New Name: ")
	if err != nil {
		return err
	}
	department, err := c.readText(ctx, "New Department: ")
	if err != nil {
		return err
	}
	salary, err := c.readFloat(ctx, "New Salary: ", "salary")
	if err != nil {
		return err
	}

	ok, err := c.svc.Update(ctx, id, name, department, salary)
	if err != nil {
		return err
	}
	if ok {
		c.println("✅ Updated.")
	} else {
		c.println(notFound)
	}
	return nil
}

func (c *Controller) remove(ctx context.Context) error {
	c.state = CollectingFields
	id, err := c.readInt(ctx, "Employee ID to delete: ", "employee ID")
	if err != nil {
		return err
	}

	ok, err := c.svc.Delete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		c.println("✅ Deleted.")
	} else {
		c.println(notFound)
	}
	return nil
}

// FormatTable renders employees as fixed-width rows.
func FormatTable(employees []domain.Employee) []string {
	if len(employees) == 0 {
		return []string{noEmployees}
	}
	lines := make([]string, 0, len(employees)+2)
	lines = append(lines, fmt.Sprintf(headerFormat, "ID", "Name", "Department", "Salary"), separator)
	for _, e := range employees {
		lines = append(lines, fmt.Sprintf(rowFormat, e.ID, e.Name, e.Department, e.Salary))
	}
	return lines
}

func (c *Controller) readLine(ctx context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.io.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Controller) readText(ctx context.Context, prompt string) (string, error) {
	c.print(prompt)
	return c.readLine(ctx)
}

func (c *Controller) readName(ctx context.Context, prompt string) (string, error) {
	c.print(prompt)
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		c.print("Name cannot be empty: ")
	}
}

func (c *Controller) readInt(ctx context.Context, prompt, field string) (int64, error) {
	c.print(prompt)
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := ParseInt(field, line)
		if err == nil {
			return n, nil
		}
		c.print("Enter a valid integer: ")
	}
}

func (c *Controller) readFloat(ctx context.Context, prompt, field string) (float64, error) {
	c.print(prompt)
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		f, err := ParseFloat(field, line)
		if err == nil {
			return f, nil
		}
		c.print("Enter a valid number: ")
	}
}

// ParseInt returns a *domain.InputFormatError for anything but a base-10
// integer.
func ParseInt(field, input string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, domain.NewInputFormatError(field, input, "integer")
	}
	return n, nil
}

// ParseFloat rejects NaN and infinities along with malformed input.
func ParseFloat(field, input string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.NewInputFormatError(field, input, "number")
	}
	return f, nil
}

func (c *Controller) print(s string) {
	if c.err == nil {
		c.err = c.io.Write(s)
	}
}

func (c *Controller) println(s string) {
	if c.err == nil {
		c.err = c.io.WriteLine(s)
	}
}
