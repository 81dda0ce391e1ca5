package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/knowledge"
)

var validLotStatuses = map[string]bool{
	string(domain.LotPlanned): true, string(domain.LotInProgress): true, string(domain.LotDone): true,
}

// ValidateImportSchema checks the schema against table and returns every
// problem found.
func ValidateImportSchema(schema *ImportSchema, table knowledge.Table) []error {
	var errs []error

	if schema.Project.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if b := schema.Project.Budget; b != nil && *b < 0 {
		errs = append(errs, fmt.Errorf("project.budget must not be negative"))
	}

	phaseRefs := make(map[string]bool)
	for i, ph := range schema.Phases {
		prefix := fmt.Sprintf("phases[%d]", i)
		errs = append(errs, validateRef(prefix, ph.Ref, phaseRefs)...)
		if ph.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	categories := make(map[string]bool, len(table.TradeCategories))
	for _, c := range table.TradeCategories {
		categories[c] = true
	}

	lotRefs := make(map[string]bool)
	for i, l := range schema.Lots {
		errs = append(errs, validateLot(fmt.Sprintf("lots[%d]", i), l, phaseRefs, lotRefs, categories)...)
	}

	for i, t := range schema.Tasks {
		errs = append(errs, validateTask(fmt.Sprintf("tasks[%d]", i), t, lotRefs)...)
	}

	return errs
}

func validateRef(prefix, ref string, seen map[string]bool) []error {
	if ref == "" {
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	}
	if seen[ref] {
		return []error{fmt.Errorf("%s.ref: duplicate ref %q", prefix, ref)}
	}
	seen[ref] = true
	return nil
}

func validateLot(prefix string, l LotImport, phaseRefs, lotRefs, categories map[string]bool) []error {
	errs := validateRef(prefix, l.Ref, lotRefs)

	if l.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if !phaseRefs[l.PhaseRef] {
		errs = append(errs, fmt.Errorf("%s.phase_ref: unknown phase %q", prefix, l.PhaseRef))
	}
	if l.TradeType != nil && !categories[*l.TradeType] {
		errs = append(errs, fmt.Errorf("%s.trade_type: unknown trade %q", prefix, *l.TradeType))
	}
	if l.Status != "" && !validLotStatuses[l.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, l.Status))
	}
	if l.Progress < 0 || l.Progress > 100 {
		errs = append(errs, fmt.Errorf("%s.progress must be between 0 and 100", prefix))
	}
	errs = append(errs, validateDate(prefix+".start_date", l.StartDate)...)
	errs = append(errs, validateDate(prefix+".end_date", l.EndDate)...)
	if l.StartDate != nil && l.EndDate != nil && *l.EndDate < *l.StartDate {
		errs = append(errs, fmt.Errorf("%s: end_date %q is before start_date %q", prefix, *l.EndDate, *l.StartDate))
	}
	return errs
}

func validateTask(prefix string, t TaskImport, lotRefs map[string]bool) []error {
	var errs []error

	if t.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if t.LotRef != "" && !lotRefs[t.LotRef] {
		errs = append(errs, fmt.Errorf("%s.lot_ref: unknown lot %q", prefix, t.LotRef))
	}
	if t.Status != "" && !domain.ValidTaskStatuses[domain.TaskStatus(t.Status)] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
	}
	errs = append(errs, validateDate(prefix+".start_date", t.StartDate)...)
	errs = append(errs, validateDate(prefix+".due_date", t.DueDate)...)
	if t.CompletedAt != nil {
		if _, err := time.Parse(time.RFC3339, *t.CompletedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.completed_at: invalid timestamp %q (expected RFC 3339)", prefix, *t.CompletedAt))
		}
	}
	return errs
}

func validateDate(field string, d *string) []error {
	if d == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *d); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *d)}
	}
	return nil
}
