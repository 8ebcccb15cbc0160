/*
directory.go - Employee directory operations

PURPOSE:
  Add, remove and look up employees. Removal cascades into the ledger: every
  session of the employee is dropped from every date, and dates left with no
  employees are pruned.
*/
package attendance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AddEmployee inserts a new employee. The id and name are required; the
// department is free text and may be empty; monthlySalary must not be
// negative (0 means not salaried).
func (s *State) AddEmployee(id, name, department string, monthlySalary float64) error {
	if id == "" || name == "" {
		return fmt.Errorf("%w: employee id and name are required", ErrInvalidInput)
	}
	if monthlySalary < 0 {
		return fmt.Errorf("%w: monthly salary must not be negative", ErrInvalidInput)
	}
	if _, exists := s.Employees[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	s.Employees[id] = Employee{
		ID:            id,
		Name:          name,
		Department:    department,
		MonthlySalary: monthlySalary,
	}
	return nil
}

// RemoveEmployee deletes the employee and cascades deletion of all their
// sessions from every date in the ledger, pruning now-empty dates.
func (s *State) RemoveEmployee(id string) error {
	if _, exists := s.Employees[id]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownEmployee, id)
	}
	delete(s.Employees, id)

	for date, byEmployee := range s.Ledger {
		delete(byEmployee, id)
		if len(byEmployee) == 0 {
			delete(s.Ledger, date)
		}
	}
	return nil
}

// Employee returns the directory record for id.
func (s *State) Employee(id string) (Employee, error) {
	emp, ok := s.Employees[id]
	if !ok {
		return Employee{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, id)
	}
	return emp, nil
}

// ListEmployees returns all employees ordered by id.
func (s *State) ListEmployees() []Employee {
	ids := make([]string, 0, len(s.Employees))
	for id := range s.Employees {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	employees := make([]Employee, 0, len(ids))
	for _, id := range ids {
		employees = append(employees, s.Employees[id])
	}
	return employees
}

// HourlyRate returns the employee's hourly rate derived from their monthly
// salary (see HourlyRateFor).
func (s *State) HourlyRate(id string) (decimal.Decimal, error) {
	emp, err := s.Employee(id)
	if err != nil {
		return decimal.Zero, err
	}
	return HourlyRateFor(emp.MonthlySalary), nil
}
