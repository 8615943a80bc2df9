package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/itradeops/itradectl/internal/collection"
	"github.com/itradeops/itradectl/internal/dispatch"
	"github.com/itradeops/itradectl/internal/models"
)

// employeesView administers console accounts: role changes and activation
// toggles. The backend returns the updated record from each mutation, so the
// row is reconciled from the response without a second fetch.
func (a *App) employeesView(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}

	col := collection.New(func(e models.Employee) string { return e.ID })
	disp := dispatch.New(col, a.confirmGate(), a.log)

	if err := col.LoadAll(ctx, a.client.Employees); err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.renderEmployees(col)

	for {
		if a.sessionLost() {
			return
		}
		line, err := getSimpleText(a.reader, "employees: role <n> <operator|manager|admin> | toggle <n> | reload | back", a.out)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "back":
			return
		case "reload":
			if err := col.LoadAll(ctx, a.client.Employees); err != nil {
				a.reportFailure(ctx, err)
				return
			}
			a.renderEmployees(col)
		case "role":
			if len(parts) != 3 {
				fmt.Fprintln(a.out, "Usage: role <n> <operator|manager|admin>")
				continue
			}
			role := models.Role(parts[2])
			if !role.Valid() {
				a.printErr("Unknown role: " + parts[2])
				continue
			}
			rec, ok := recordByIndex(col, parts[1])
			if !ok {
				a.printErr("No employee #" + parts[1])
				continue
			}
			a.changeEmployee(ctx, disp, col, rec.Data,
				fmt.Sprintf("Change role of %s to %s?", rec.Data.Login, role),
				func(ctx context.Context) (models.Employee, error) {
					return a.client.SetEmployeeRole(ctx, rec.Data.ID, role)
				})
		case "toggle":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: toggle <n>")
				continue
			}
			rec, ok := recordByIndex(col, parts[1])
			if !ok {
				a.printErr("No employee #" + parts[1])
				continue
			}
			verb := "Activate"
			if rec.Data.IsActive {
				verb = "Deactivate"
			}
			a.changeEmployee(ctx, disp, col, rec.Data,
				fmt.Sprintf("%s account %s?", verb, rec.Data.Login),
				func(ctx context.Context) (models.Employee, error) {
					return a.client.ToggleEmployeeStatus(ctx, rec.Data.ID)
				})
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

// changeEmployee runs the mutation once and applies the returned record in
// place of the old row.
func (a *App) changeEmployee(ctx context.Context, disp *dispatch.Dispatcher[models.Employee], col *collection.Collection[models.Employee], emp models.Employee, prompt string, mutate func(context.Context) (models.Employee, error)) {
	var updated models.Employee
	err := disp.RefreshOne(ctx, emp.ID, prompt,
		func(ctx context.Context) error {
			var err error
			updated, err = mutate(ctx)
			return err
		},
		func(context.Context) (models.Employee, error) { return updated, nil },
	)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.printOK("Updated " + updated.Login + ".")
	a.renderEmployees(col)
}

func (a *App) renderEmployees(col *collection.Collection[models.Employee]) {
	snap := col.Snapshot()
	a.printTitle(fmt.Sprintf("Employees (%d)", len(snap)))

	rows := make([][]string, 0, len(snap))
	for i, rec := range snap {
		e := rec.Data
		active := "inactive"
		if e.IsActive {
			active = "active"
		}
		lastLogin := "-"
		if e.LastLogin != nil {
			lastLogin = e.LastLogin.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Login,
			string(e.Role),
			active,
			lastLogin,
			loadingMark(rec.Loading),
		})
	}
	a.printTable([]string{"#", "LOGIN", "ROLE", "STATUS", "LAST LOGIN", ""}, rows)
}
